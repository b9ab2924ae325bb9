package cache

import (
	"aegisbot/util"
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const adminCacheKeyDir = "bot:admin_cache:"

// RedisBackend stores one hash per chat, field user id, value rank.
type RedisBackend struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisBackend(rdb *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rdb: rdb, ttl: ttl}
}

func adminCacheKey(chatID int64) string {
	return util.StrBuilder(adminCacheKeyDir, util.NumToStr(chatID))
}

func (b *RedisBackend) Get(ctx context.Context, chatID int64) (map[int64]Rank, bool, error) {
	res, err := b.rdb.HGetAll(ctx, adminCacheKey(chatID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(res) == 0 {
		return nil, false, nil
	}
	roster := make(map[int64]Rank, len(res))
	for field, value := range res {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			continue
		}
		roster[id] = Rank(value)
	}
	return roster, true, nil
}

func (b *RedisBackend) Put(ctx context.Context, chatID int64, roster map[int64]Rank) error {
	key := adminCacheKey(chatID)
	values := make([]interface{}, 0, len(roster)*2)
	for id, rank := range roster {
		values = append(values, util.NumToStr(id), string(rank))
	}
	pipe := b.rdb.TxPipeline()
	pipe.Del(ctx, key)
	if len(values) > 0 {
		pipe.HSet(ctx, key, values...)
		pipe.Expire(ctx, key, b.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}
