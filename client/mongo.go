package client

import (
	"aegisbot/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoClient struct {
	*mongo.Client
	name string
}

func newMongodbClient(url string) (AfkClient, error) {
	opt := options.Client().ApplyURI(url).
		SetMinPoolSize(5).SetMaxPoolSize(100)
	db, err := mongo.Connect(context.Background(), opt)
	if err != nil {
		return nil, err
	}
	return &MongoClient{Client: db, name: model.AfkCollectionName}, nil
}

func (m *MongoClient) collection() *mongo.Collection {
	return m.Client.Database(m.name).Collection(m.name)
}

func (m *MongoClient) AddAfk(ctx context.Context, userID int64, reason string) error {
	record := &model.AfkRecord{
		UserID:     userID,
		Reason:     reason,
		CreateTime: time.Now(),
	}
	opt := options.Replace().SetUpsert(true)
	_, err := m.collection().ReplaceOne(ctx, bson.D{{Key: "user_id", Value: userID}}, record, opt)
	return err
}

func (m *MongoClient) CheckAfk(ctx context.Context, userID int64) (*model.AfkRecord, error) {
	record := &model.AfkRecord{}
	err := m.collection().FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (m *MongoClient) RemoveAfk(ctx context.Context, userID int64) error {
	_, err := m.collection().DeleteOne(ctx, bson.D{{Key: "user_id", Value: userID}})
	return err
}
