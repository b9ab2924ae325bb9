package client

import (
	"aegisbot/model"
	"context"
	"fmt"
	"github.com/sirupsen/logrus"
	"sync"
)

// AfkClient persists at most one AFK record per user. A nil record from
// CheckAfk means the user is not AFK.
type AfkClient interface {
	AddAfk(ctx context.Context, userID int64, reason string) error
	CheckAfk(ctx context.Context, userID int64) (*model.AfkRecord, error)
	RemoveAfk(ctx context.Context, userID int64) error
}

var AfkProvider = make(map[string]func(string) AfkClient)

var afkClient AfkClient
var afkClientOnce sync.Once

func NewAfkClient(provider, url string) (AfkClient, error) {
	newClient, ok := AfkProvider[provider]
	if !ok {
		return nil, fmt.Errorf("unknown afk store provider: %s", provider)
	}
	return newClient(url), nil
}

func init() {
	defer func() {
		for i := range AfkProvider {
			logrus.Infof("registr_afk_provider:%v", i)
		}
	}()
	AfkProvider["mongo"] = func(url string) AfkClient {
		afkClientOnce.Do(func() {
			c, err := newMongodbClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			afkClient = c
			logrus.Infof("new mongo_client:%+v", c)
		})
		return afkClient
	}
	AfkProvider["mysql"] = func(url string) AfkClient {
		afkClientOnce.Do(func() {
			c, err := newMysqlClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			afkClient = c
			logrus.Infof("new mysql_client:%+v", c)
		})
		return afkClient
	}
	AfkProvider["es"] = func(url string) AfkClient {
		afkClientOnce.Do(func() {
			es, err := newEsClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			afkClient = es
			logrus.Infof("new es_client:%+v", es)
		})
		return afkClient
	}
}
