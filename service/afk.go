package service

import (
	"aegisbot/util"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

var afkCommandNames = []string{"afk", "brb"}

// IsAfkCommand reports whether name is a set-AFK command. The record such
// a command writes must survive its own message, so the clear handler
// skips it.
func IsAfkCommand(name string) bool {
	for _, n := range afkCommandNames {
		if n == name {
			return true
		}
	}
	return false
}

// setAfkCommand marks the sender AFK with the rest of the message as the
// optional reason. Any store failure is reported back to the chat as raw
// error text and the command ends there.
func (c *CommandConfig) setAfkCommand() {
	m := c.update.Message
	if m.Chat == nil || m.Chat.IsPrivate() {
		return
	}
	reason := strings.TrimSpace(c.rest)
	if err := c.deps.Afk.AddAfk(c.ctx, m.From.ID, reason); err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.sendMessage()
		return
	}
	text := util.StrBuilder("User ", m.From.FirstName, " is now afk!")
	if reason != "" {
		text = util.StrBuilder(text, "\nReason: ", reason)
	}
	c.messageConfig.Text = text
	c.messageConfig.Entities = []tgbotapi.MessageEntity{
		{
			Type:   "text_mention",
			Offset: 5,
			Length: util.TGNameWidth(m.From.FirstName),
			User:   m.From,
		},
	}
	c.sendMessage()
}

// AfkConfig runs the two message-group AFK handlers. The controller calls
// Mentioned before ClearAfk so a mention notice is emitted before the
// mentioning sender's own status is cleared by the same message.
type AfkConfig struct {
	*BotConfig
}

func NewAfkConfig(botConfig *BotConfig) *AfkConfig {
	return &AfkConfig{BotConfig: botConfig}
}

// mentionedUsers are the users the message points at: the replied-to
// sender and every text_mention entity. Plain @username mentions carry no
// user id on this platform surface and are not resolvable here.
func mentionedUsers(m *tgbotapi.Message) []*tgbotapi.User {
	var users []*tgbotapi.User
	seen := make(map[int64]struct{})
	if reply := m.ReplyToMessage; reply != nil && reply.From != nil {
		users = append(users, reply.From)
		seen[reply.From.ID] = struct{}{}
	}
	for i := range m.Entities {
		entity := m.Entities[i]
		if entity.Type != "text_mention" || entity.User == nil {
			continue
		}
		if _, ok := seen[entity.User.ID]; ok {
			continue
		}
		users = append(users, entity.User)
		seen[entity.User.ID] = struct{}{}
	}
	return users
}

// Mentioned replies with an AFK notice for every mentioned user holding a
// record. The record is left in place; only its owner's own message
// clears it.
func (c *AfkConfig) Mentioned() {
	m := c.update.Message
	if m == nil || m.From == nil || m.From.IsBot {
		return
	}
	for _, user := range mentionedUsers(m) {
		if user.ID == m.From.ID {
			continue
		}
		record, err := c.deps.Afk.CheckAfk(c.ctx, user.ID)
		if err != nil {
			logrus.Error(err)
			c.messageConfig.Text = util.StrBuilder("Error while checking afk status\n", err.Error())
			c.messageConfig.Entities = nil
			c.sendMessage()
			return
		}
		if record == nil {
			continue
		}
		text := util.StrBuilder(user.FirstName, " is Afk!")
		if record.Reason != "" {
			text = util.StrBuilder(text, "\nReason: ", record.Reason)
		}
		c.messageConfig.Text = text
		c.messageConfig.Entities = []tgbotapi.MessageEntity{
			{
				Type:   "text_mention",
				Offset: 0,
				Length: util.TGNameWidth(user.FirstName),
				User:   user,
			},
		}
		c.sendMessage()
	}
}

// ClearAfk removes the sender's record on any group message of theirs.
func (c *AfkConfig) ClearAfk() {
	m := c.update.Message
	if m == nil || m.From == nil || m.From.IsBot {
		return
	}
	record, err := c.deps.Afk.CheckAfk(c.ctx, m.From.ID)
	if err != nil {
		logrus.Error(err)
		c.messageConfig.Text = util.StrBuilder("Error while checking afk status\n", err.Error())
		c.messageConfig.Entities = nil
		c.sendMessage()
		return
	}
	if record == nil {
		return
	}
	if err := c.deps.Afk.RemoveAfk(c.ctx, m.From.ID); err != nil {
		logrus.Error(err)
		c.messageConfig.Text = err.Error()
		c.messageConfig.Entities = nil
		c.sendMessage()
		return
	}
	c.messageConfig.Text = util.StrBuilder(m.From.FirstName, " is no longer Afk!")
	c.messageConfig.Entities = []tgbotapi.MessageEntity{
		{
			Type:   "text_mention",
			Offset: 0,
			Length: util.TGNameWidth(m.From.FirstName),
			User:   m.From,
		},
	}
	c.sendMessage()
}
