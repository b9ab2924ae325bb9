package cache

import (
	"context"
	"sync"
)

// MemoryBackend keeps rosters in process memory. Useful for single
// instance deployments without redis and for tests.
type MemoryBackend struct {
	mu      sync.RWMutex
	rosters map[int64]map[int64]Rank
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{rosters: make(map[int64]map[int64]Rank)}
}

func (b *MemoryBackend) Get(_ context.Context, chatID int64) (map[int64]Rank, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	roster, ok := b.rosters[chatID]
	if !ok {
		return nil, false, nil
	}
	copied := make(map[int64]Rank, len(roster))
	for id, rank := range roster {
		copied[id] = rank
	}
	return copied, true, nil
}

func (b *MemoryBackend) Put(_ context.Context, chatID int64, roster map[int64]Rank) error {
	copied := make(map[int64]Rank, len(roster))
	for id, rank := range roster {
		copied[id] = rank
	}
	b.mu.Lock()
	b.rosters[chatID] = copied
	b.mu.Unlock()
	return nil
}
