package client

import (
	"aegisbot/model"
	"aegisbot/util"
	"context"
	"encoding/json"
	"time"

	"github.com/olivere/elastic/v7"
)

type EsClient struct {
	*elastic.Client
	name string
}

func newEsClient(url string) (AfkClient, error) {
	es, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, err
	}
	return &EsClient{Client: es, name: model.AfkCollectionName}, nil
}

// Records are keyed by user id so an add overwrites any previous one.
func (e *EsClient) AddAfk(ctx context.Context, userID int64, reason string) error {
	record := &model.AfkRecord{
		UserID:     userID,
		Reason:     reason,
		CreateTime: time.Now(),
	}
	_, err := e.Index().Index(e.name).Id(util.NumToStr(userID)).BodyJson(record).Do(ctx)
	return err
}

func (e *EsClient) CheckAfk(ctx context.Context, userID int64) (*model.AfkRecord, error) {
	res, err := e.Get().Index(e.name).Id(util.NumToStr(userID)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record := &model.AfkRecord{}
	if err := json.Unmarshal(res.Source, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (e *EsClient) RemoveAfk(ctx context.Context, userID int64) error {
	_, err := e.Delete().Index(e.name).Id(util.NumToStr(userID)).Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}
