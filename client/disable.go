package client

import (
	"aegisbot/model"
	"aegisbot/util"
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const disableKeyDir = "bot:disable:"

// DisableStore is the per-chat disabled-command record. The command-match
// predicate only reads it; the enable/disable commands write it.
type DisableStore interface {
	Get(ctx context.Context, chatID int64) (model.DisabledCommands, error)
	Disable(ctx context.Context, chatID int64, command string) error
	Enable(ctx context.Context, chatID int64, command string) error
	SetAction(ctx context.Context, chatID int64, action string) error
}

type RedisDisableStore struct {
	rdb *redis.Client
}

func NewDisableStore(rdb *redis.Client) *RedisDisableStore {
	return &RedisDisableStore{rdb: rdb}
}

func disableCommandsKey(chatID int64) string {
	return util.StrBuilder(disableKeyDir, util.NumToStr(chatID), ":commands")
}

func disableActionKey(chatID int64) string {
	return util.StrBuilder(disableKeyDir, util.NumToStr(chatID), ":action")
}

func (d *RedisDisableStore) Get(ctx context.Context, chatID int64) (model.DisabledCommands, error) {
	record := model.DisabledCommands{Action: model.ActionNone}
	commands, err := d.rdb.SMembers(ctx, disableCommandsKey(chatID)).Result()
	if err != nil {
		return record, err
	}
	record.Commands = make(map[string]struct{}, len(commands))
	for _, command := range commands {
		record.Commands[command] = struct{}{}
	}
	action, err := d.rdb.Get(ctx, disableActionKey(chatID)).Result()
	if errors.Is(err, redis.Nil) {
		return record, nil
	}
	if err != nil {
		return record, err
	}
	record.Action = action
	return record, nil
}

func (d *RedisDisableStore) Disable(ctx context.Context, chatID int64, command string) error {
	return d.rdb.SAdd(ctx, disableCommandsKey(chatID), command).Err()
}

func (d *RedisDisableStore) Enable(ctx context.Context, chatID int64, command string) error {
	return d.rdb.SRem(ctx, disableCommandsKey(chatID), command).Err()
}

func (d *RedisDisableStore) SetAction(ctx context.Context, chatID int64, action string) error {
	switch action {
	case model.ActionNone:
		return d.rdb.Del(ctx, disableActionKey(chatID)).Err()
	case model.ActionDel:
		return d.rdb.Set(ctx, disableActionKey(chatID), action, 0).Err()
	}
	return fmt.Errorf("unknown disable action: %s", action)
}
