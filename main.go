package main

import (
	"aegisbot/app"
	"aegisbot/config"
	"aegisbot/db"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := config.Load(); err != nil {
		logrus.Panic(err)
	}
	db.Init()
	app.RunBot()
}
