package controller

import (
	"aegisbot/service"
	"aegisbot/util"
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Controller routes one update. Administrator-list changes invalidate the
// admin cache; messages go through command dispatch and then, for groups,
// the AFK handlers with the mention notice strictly before the clear.
// Command messages clear AFK status like any other group message; only
// the set-AFK command keeps the record it just wrote.
func Controller(ctx context.Context, cancel context.CancelFunc, deps *service.Deps, update tgbotapi.Update) {
	logrus.DebugFn(util.LogMarshalFn(update))

	if chatMember := update.MyChatMember; chatMember != nil {
		if _, err := deps.Cache.Reload(ctx, chatMember.Chat.ID, "my_chat_member_update"); err != nil {
			logrus.Error(err)
		}
		return
	}
	if chatMember := update.ChatMember; chatMember != nil {
		if _, err := deps.Cache.Reload(ctx, chatMember.Chat.ID, "chat_member_update"); err != nil {
			logrus.Error(err)
		}
		return
	}

	if update.Message == nil {
		return
	}
	c := service.NewBotConfig(ctx, cancel, deps, update)
	command, matched := c.DispatchCommand()
	if update.Message.Chat.IsPrivate() {
		return
	}
	afk := service.NewAfkConfig(c)
	afk.Mentioned()
	if matched && service.IsAfkCommand(command) {
		return
	}
	afk.ClearAfk()
}
