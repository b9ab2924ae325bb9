package service

import (
	"aegisbot/model"
	"aegisbot/util"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// request runs one platform call and reports the outcome as a reply.
func (c *CommandConfig) request(chattable tgbotapi.Chattable, success string) {
	req, err := c.deps.API.Request(chattable)
	if err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	if !req.Ok {
		logrus.Errorln(req.ErrorCode, req.Description)
		c.messageConfig.Text = req.Description
		c.sendMessage()
		return
	}
	c.messageConfig.Text = success
	c.sendMessage()
}

// targetUserID picks the replied-to sender, falling back to a numeric
// first argument.
func (c *CommandConfig) targetUserID() (int64, bool) {
	if reply := c.update.Message.ReplyToMessage; reply != nil && reply.From != nil {
		return reply.From.ID, true
	}
	if len(c.args) > 0 {
		if id, err := strconv.ParseInt(c.args[0], 10, 64); err == nil {
			return id, true
		}
	}
	return 0, false
}

func (c *CommandConfig) startCommand() {
	c.messageConfig.Text = "I'm alive. Use /afk <reason> in a group to set your status."
	c.sendMessage()
}

func (c *CommandConfig) statsCommand() {
	c.messageConfig.Text = util.StrBuilder("Registered commands: ", util.NumToStr(len(commands)))
	c.sendMessage()
}

func (c *CommandConfig) banCommand() {
	userID, ok := c.targetUserID()
	if !ok {
		c.messageConfig.Text = "Reply to a user or pass a user id."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.BanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: c.update.Message.Chat.ID,
			UserID: userID,
		},
	}, "Banned.")
}

func (c *CommandConfig) unBanCommand() {
	userID, ok := c.targetUserID()
	if !ok {
		c.messageConfig.Text = "Reply to a user or pass a user id."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: c.update.Message.Chat.ID,
			UserID: userID,
		},
		OnlyIfBanned: true,
	}, "Unbanned.")
}

func (c *CommandConfig) promoteCommand() {
	userID, ok := c.targetUserID()
	if !ok {
		c.messageConfig.Text = "Reply to a user or pass a user id."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.PromoteChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: c.update.Message.Chat.ID,
			UserID: userID,
		},
		CanDeleteMessages:   true,
		CanRestrictMembers:  true,
		CanInviteUsers:      true,
		CanPinMessages:      true,
		CanManageVoiceChats: true,
	}, "Promoted.")
}

func (c *CommandConfig) demoteCommand() {
	userID, ok := c.targetUserID()
	if !ok {
		c.messageConfig.Text = "Reply to a user or pass a user id."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.PromoteChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{
			ChatID: c.update.Message.Chat.ID,
			UserID: userID,
		},
	}, "Demoted.")
}

func (c *CommandConfig) pinCommand() {
	reply := c.update.Message.ReplyToMessage
	if reply == nil {
		c.messageConfig.Text = "Reply to the message you want pinned."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.PinChatMessageConfig{
		ChatID:              c.update.Message.Chat.ID,
		MessageID:           reply.MessageID,
		DisableNotification: true,
	}, "Pinned.")
}

func (c *CommandConfig) unPinCommand() {
	c.request(tgbotapi.UnpinChatMessageConfig{
		ChatID: c.update.Message.Chat.ID,
	}, "Unpinned.")
}

func (c *CommandConfig) setTitleCommand() {
	title := strings.TrimSpace(c.rest)
	if title == "" {
		c.messageConfig.Text = "Give me a title to set."
		c.sendMessage()
		return
	}
	c.request(tgbotapi.SetChatTitleConfig{
		ChatID: c.update.Message.Chat.ID,
		Title:  title,
	}, "Title updated.")
}

func (c *CommandConfig) setDescCommand() {
	c.request(tgbotapi.SetChatDescriptionConfig{
		ChatID:      c.update.Message.Chat.ID,
		Description: strings.TrimSpace(c.rest),
	}, "Description updated.")
}

// switchableCommand validates the argument of enable/disable. The switch
// commands themselves cannot be disabled.
func (c *CommandConfig) switchableCommand() (string, bool) {
	if len(c.args) == 0 {
		c.messageConfig.Text = util.StrBuilder("Usage: /", c.command, " <command>")
		c.sendMessage()
		return "", false
	}
	name := strings.ToLower(strings.TrimPrefix(c.args[0], "/"))
	if name == "enable" || name == "disable" || name == "disabledel" {
		return "", false
	}
	if !IsRegisteredCommand(name) {
		c.messageConfig.Text = util.StrBuilder("Unknown command: ", name)
		c.sendMessage()
		return "", false
	}
	return name, true
}

func (c *CommandConfig) enableCommand() {
	name, ok := c.switchableCommand()
	if !ok {
		return
	}
	if err := c.deps.Disable.Enable(c.ctx, c.update.Message.Chat.ID, name); err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	logrus.Infof("enable_command:%v", name)
	c.messageConfig.Text = util.StrBuilder(name, " has been enabled.")
	c.sendMessage()
}

func (c *CommandConfig) disableCommand() {
	name, ok := c.switchableCommand()
	if !ok {
		return
	}
	if err := c.deps.Disable.Disable(c.ctx, c.update.Message.Chat.ID, name); err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	logrus.Infof("disable_command:%v", name)
	c.messageConfig.Text = util.StrBuilder(name, " has been disabled.")
	c.sendMessage()
}

func (c *CommandConfig) disableDelCommand() {
	action := model.ActionNone
	if len(c.args) > 0 && strings.EqualFold(c.args[0], "on") {
		action = model.ActionDel
	}
	if err := c.deps.Disable.SetAction(c.ctx, c.update.Message.Chat.ID, action); err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	if action == model.ActionDel {
		c.messageConfig.Text = "Messages invoking disabled commands will now be deleted."
	} else {
		c.messageConfig.Text = "Messages invoking disabled commands will be left alone."
	}
	c.sendMessage()
}

func (c *CommandConfig) adminCacheCommand() {
	roster, err := c.deps.Cache.Reload(c.ctx, c.update.Message.Chat.ID, "manual")
	if err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	c.messageConfig.Text = util.StrBuilder("Admin cache reloaded, ", util.NumToStr(len(roster)), " admins.")
	c.sendMessage()
}
