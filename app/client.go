package app

import (
	"aegisbot/config"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// allowedUpdates must name chat_member explicitly or the platform never
// delivers administrator-change events.
var allowedUpdates = []string{"message", "callback_query", "my_chat_member", "chat_member"}

type Client interface {
	Channel() tgbotapi.UpdatesChannel
	GetBot() *tgbotapi.BotAPI
}

type Polling struct {
	bot *tgbotapi.BotAPI
}

func NewPolling(bot *tgbotapi.BotAPI) *Polling {
	return &Polling{bot: bot}
}

type Webhook struct {
	bot *tgbotapi.BotAPI
}

func NewWebhook(bot *tgbotapi.BotAPI) *Webhook {
	return &Webhook{bot: bot}
}

func (c Polling) Channel() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = allowedUpdates
	updates := c.bot.GetUpdatesChan(u)
	return updates
}

func (c Polling) GetBot() *tgbotapi.BotAPI {
	return c.bot
}

func (c Webhook) Channel() tgbotapi.UpdatesChannel {
	info, err := c.setWebhook()
	if err != nil {
		logrus.Panic(err)
	}
	logrus.Infof("webhook:%v", info)
	updates := c.bot.ListenForWebhook("/" + config.Conf.Webhook.Token)
	go func() {
		err := http.ListenAndServeTLS(config.Conf.Webhook.ListenAddr,
			config.Conf.Webhook.CertFile, config.Conf.Webhook.CertKeyFile, nil)
		if err != nil {
			logrus.Error(err)
		}
	}()
	return updates
}

func (c Webhook) GetBot() *tgbotapi.BotAPI {
	return c.bot
}
