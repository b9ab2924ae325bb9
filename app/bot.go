package app

import (
	"aegisbot/cache"
	"aegisbot/client"
	"aegisbot/config"
	"aegisbot/controller"
	"aegisbot/db"
	"aegisbot/filters"
	"aegisbot/service"
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func RunBot() {
	bot, err := tgbotapi.NewBotAPI(config.Conf.BotToken)
	if err != nil {
		logrus.Panic(err)
	}
	bot.Debug = false
	logrus.Infof("bot=%v", bot.Self.UserName)

	deps := newDeps(bot)

	switch config.Conf.UpdatesType {
	case "webhook":
		logrus.Info("updates_type=webhook")
		updatesHandler(NewWebhook(bot), deps)
	default:
		logrus.Info("updates_type=polling")
		updatesHandler(NewPolling(bot), deps)
	}
}

func newDeps(bot *tgbotapi.BotAPI) *service.Deps {
	adminCache := cache.New(bot, cache.NewRedisBackend(db.RDB, time.Duration(config.Conf.KeyTTL)*time.Second))
	disable := client.NewDisableStore(db.RDB)
	afk, err := client.NewAfkClient(config.Conf.AfkStore.Provider, config.Conf.AfkStore.URL)
	if err != nil {
		logrus.Panic(err)
	}
	flt := filters.New(bot, filters.Options{
		BotID:       bot.Self.ID,
		BotUsername: bot.Self.UserName,
		Prefixes:    config.Conf.Prefixes,
		Tiers:       config.Conf.Tiers(),
	}, adminCache, disable)
	return &service.Deps{
		API:     bot,
		Filters: flt,
		Cache:   adminCache,
		Afk:     afk,
		Disable: disable,
	}
}

// updateChatID picks the chat an update belongs to so it lands on that
// chat's handler goroutine.
func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.MyChatMember != nil:
		return update.MyChatMember.Chat.ID, true
	case update.ChatMember != nil:
		return update.ChatMember.Chat.ID, true
	}
	return 0, false
}

func updatesHandler(client Client, deps *service.Deps) {
	for update := range client.Channel() {
		chatID, ok := updateChatID(update)
		if !ok {
			continue
		}
		if _chatCh, ok := chatMap.Load(chatID); ok {
			if chatCh, _ok := _chatCh.(chatChannel); _ok {
				chatCh <- update
				continue
			}
		}
		logrus.Infof("new chat_handler=%v", chatID)
		updateCh := make(chatChannel, 10)
		chatMap.Store(chatID, updateCh)
		go chatHandler(updateCh, deps)
		updateCh <- update
	}
}

var chatMap sync.Map

type chatChannel chan tgbotapi.Update

func chatHandler(ch chatChannel, deps *service.Deps) {
	var chatID int64
	var ttl int64 = 600
	for {
		select {
		case update := <-ch:
			ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
			controller.Controller(ctx, cancel, deps, update)
			chatID, _ = updateChatID(update)
			if update.Message != nil && update.Message.Chat.IsPrivate() {
				ttl = 60
			} else {
				ttl = 600
			}
		case <-time.After(time.Second * time.Duration(ttl)):
			logrus.Infof("close chat_handler=%v", chatID)
			chatMap.Delete(chatID)
			close(ch)
			return
		}
	}
}
