package db

import (
	"aegisbot/config"
	"context"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

var RDB *redis.Client

func Init() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.Conf.RedisHost,
		PoolSize: 10,
	})
	if ok, err := RDB.Ping(context.Background()).Result(); ok != "PONG" && err != nil {
		logrus.Panicln(ok, err)
	}
}
