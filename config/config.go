package config

import (
	"aegisbot/util"
	"encoding/json"
	"errors"
	"github.com/sirupsen/logrus"
	"os"
	"path"
	"runtime"
)

type Webhook struct {
	Endpoint    string `json:"endpoint"`
	CertFile    string `json:"cert_file"`
	CertKeyFile string `json:"cert_key_file"`
	ListenAddr  string `json:"listen_addr"`
	Token       string `json:"token"`
}

type AfkStore struct {
	Provider string `json:"provider"`
	URL      string `json:"url"`
}

type Config struct {
	BotToken    string   `json:"bot_token"`
	RedisHost   string   `json:"redis_host"`
	KeyTTL      uint     `json:"key_ttl"`
	LogLevel    uint8    `json:"log_level"`
	UpdatesType string   `json:"updates_type"`
	Webhook     Webhook  `json:"webhook"`
	Prefixes    []string `json:"prefixes"`
	OwnerID     int64    `json:"owner_id"`
	DevIDs      []int64  `json:"dev_ids"`
	SudoIDs     []int64  `json:"sudo_ids"`
	AfkStore    AfkStore `json:"afk_store"`
}

var Conf Config

// Load reads the file named by BOT_CONFIG and configures logging.
// It must run before any collaborator is constructed.
func Load() error {
	configFile := os.Getenv("BOT_CONFIG")
	if configFile == "" {
		return errors.New("BOT_CONFIG is not set")
	}
	config, err := os.ReadFile(configFile)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(config, &Conf); err != nil {
		return err
	}
	if len(Conf.Prefixes) == 0 {
		Conf.Prefixes = []string{"/", "!"}
	}
	if Conf.KeyTTL == 0 {
		Conf.KeyTTL = 86400
	}
	if Conf.AfkStore.Provider == "" {
		Conf.AfkStore.Provider = "mongo"
	}

	switch {
	case Conf.LogLevel >= 3:
		logrus.SetLevel(logrus.DebugLevel)
	case Conf.LogLevel == 2:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.ErrorLevel)
	}
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			fileName := path.Base(frame.File)
			return frame.Function, fileName
		},
	})

	logrus.Infof("config:%v", util.LogMarshal(Conf))
	return nil
}
