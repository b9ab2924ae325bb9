package service

import (
	"aegisbot/cache"
	"aegisbot/client"
	"aegisbot/filters"
	"aegisbot/util"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Deps are the collaborators every handler needs, built once at startup
// and threaded through instead of living as package globals.
type Deps struct {
	API     filters.API
	Filters *filters.Filters
	Cache   *cache.AdminCache
	Afk     client.AfkClient
	Disable client.DisableStore
}

type BotConfig struct {
	update        tgbotapi.Update
	deps          *Deps
	messageConfig tgbotapi.MessageConfig
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewBotConfig(ctx context.Context, cancel context.CancelFunc, deps *Deps, update tgbotapi.Update) *BotConfig {
	botConfig := &BotConfig{
		ctx:    ctx,
		cancel: cancel,
		deps:   deps,
		update: update,
	}
	if m := update.Message; m != nil {
		botConfig.messageConfig = tgbotapi.MessageConfig{
			BaseChat: tgbotapi.BaseChat{
				ChatID:           m.Chat.ID,
				ReplyToMessageID: m.MessageID,
			},
		}
	}
	return botConfig
}

func (c *BotConfig) sendMessage() {
	if _, err := c.deps.API.Send(c.messageConfig); err != nil {
		logrus.Error(err)
	}
	logrus.Debugf("send_msg:%v", util.LogMarshal(c.messageConfig))
}
