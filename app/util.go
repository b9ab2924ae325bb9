package app

import (
	"aegisbot/config"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (c Webhook) setWebhook() (string, error) {
	certFile, err := os.ReadFile(config.Conf.Webhook.CertFile)
	if err != nil {
		return "", err
	}
	cert := tgbotapi.FileBytes{
		Name:  "certificate",
		Bytes: certFile,
	}
	wh, err := tgbotapi.NewWebhookWithCert(config.Conf.Webhook.Endpoint+config.Conf.Webhook.Token, cert)
	if err != nil {
		return "", err
	}
	wh.AllowedUpdates = allowedUpdates
	_, err = c.bot.Request(wh)
	if err != nil {
		return "", err
	}
	info, err := c.bot.GetWebhookInfo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%+v", info), err
}
