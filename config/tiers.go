package config

// Tiers holds the nested allow-lists of privileged users. Dev is a subset
// of Sudo and the owner belongs to both. Values are immutable once built.
type Tiers struct {
	OwnerID int64
	dev     map[int64]struct{}
	sudo    map[int64]struct{}
}

func NewTiers(ownerID int64, devIDs, sudoIDs []int64) Tiers {
	t := Tiers{
		OwnerID: ownerID,
		dev:     make(map[int64]struct{}),
		sudo:    make(map[int64]struct{}),
	}
	t.dev[ownerID] = struct{}{}
	t.sudo[ownerID] = struct{}{}
	for _, id := range devIDs {
		t.dev[id] = struct{}{}
		t.sudo[id] = struct{}{}
	}
	for _, id := range sudoIDs {
		t.sudo[id] = struct{}{}
	}
	return t
}

func (c *Config) Tiers() Tiers {
	return NewTiers(c.OwnerID, c.DevIDs, c.SudoIDs)
}

func (t Tiers) IsOwner(userID int64) bool {
	return userID == t.OwnerID
}

func (t Tiers) IsDev(userID int64) bool {
	_, ok := t.dev[userID]
	return ok
}

func (t Tiers) IsSudo(userID int64) bool {
	_, ok := t.sudo[userID]
	return ok
}
