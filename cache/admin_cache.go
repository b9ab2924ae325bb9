// Package cache holds the chat administrator roster cache. Entries are
// replaced wholesale on reload; concurrent reloads of the same chat are
// last-write-wins since the roster is refetched from a canonical source.
package cache

import (
	"context"
	"errors"
	"fmt"
	"github.com/bitly/go-simplejson"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Rank string

const (
	RankCreator       Rank = "creator"
	RankAdministrator Rank = "administrator"
)

// ErrNotApplicable marks a roster lookup against a chat that has no
// administrator concept, e.g. a private chat. Permission checks treat it
// as allowed rather than as a failure.
var ErrNotApplicable = errors.New("chat has no administrator roster")

type RosterAPI interface {
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Backend interface {
	Get(ctx context.Context, chatID int64) (map[int64]Rank, bool, error)
	Put(ctx context.Context, chatID int64, roster map[int64]Rank) error
}

type AdminCache struct {
	api     RosterAPI
	backend Backend
}

func New(api RosterAPI, backend Backend) *AdminCache {
	return &AdminCache{api: api, backend: backend}
}

// GetAdmins is cache-first: a hit returns the stored roster, a miss
// triggers exactly one synchronous reload.
func (c *AdminCache) GetAdmins(ctx context.Context, chatID int64) (map[int64]Rank, error) {
	roster, ok, err := c.backend.Get(ctx, chatID)
	if err != nil {
		logrus.Error(err)
	}
	if ok {
		return roster, nil
	}
	return c.Reload(ctx, chatID, "cache_miss")
}

// Reload fetches the live administrator list and replaces the cached
// entry. The reason tag only distinguishes trigger sources in logs.
func (c *AdminCache) Reload(ctx context.Context, chatID int64, reason string) (map[int64]Rank, error) {
	req, err := c.api.Request(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{
			ChatID: chatID,
		},
	})
	// API-level failures arrive with both the response and a non-nil
	// error; the response code decides before the error does.
	if req != nil && !req.Ok {
		if req.ErrorCode == 400 {
			return nil, ErrNotApplicable
		}
		return nil, fmt.Errorf("get chat administrators: %v %v", req.ErrorCode, req.Description)
	}
	if err != nil {
		return nil, err
	}

	resJson, err := simplejson.NewJson(req.Result)
	if err != nil {
		return nil, err
	}
	chatAdministrators := resJson.MustArray()
	roster := make(map[int64]Rank, len(chatAdministrators))
	for i := range chatAdministrators {
		member := resJson.GetIndex(i)
		id := member.Get("user").Get("id").MustInt64()
		roster[id] = Rank(member.Get("status").MustString())
	}
	if err := c.backend.Put(ctx, chatID, roster); err != nil {
		logrus.Error(err)
	}
	logrus.Infof("admin_cache_reload chat=%v reason=%s admins=%v", chatID, reason, len(roster))
	return roster, nil
}
