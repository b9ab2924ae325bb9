package client

import (
	"aegisbot/model"
	"context"
	"errors"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type MysqlClient struct {
	*gorm.DB
}

func newMysqlClient(url string) (AfkClient, error) {
	db, err := gorm.Open(mysql.Open(url), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Second * 600)
	return &MysqlClient{DB: db}, err
}

func (m *MysqlClient) AddAfk(ctx context.Context, userID int64, reason string) error {
	db := m.WithContext(ctx)
	if err := db.Where("user_id = ?", userID).Delete(&model.MysqlAfkRecord{}).Error; err != nil {
		return err
	}
	record := &model.MysqlAfkRecord{
		UserID:     userID,
		Reason:     reason,
		CreateTime: time.Now().Format("2006-01-02 15:04:05"),
	}
	return db.Create(record).Error
}

func (m *MysqlClient) CheckAfk(ctx context.Context, userID int64) (*model.AfkRecord, error) {
	var record model.MysqlAfkRecord
	err := m.WithContext(ctx).Where("user_id = ?", userID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	createTime, _ := time.Parse("2006-01-02 15:04:05", record.CreateTime)
	return &model.AfkRecord{
		UserID:     record.UserID,
		Reason:     record.Reason,
		CreateTime: createTime,
	}, nil
}

func (m *MysqlClient) RemoveAfk(ctx context.Context, userID int64) error {
	return m.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.MysqlAfkRecord{}).Error
}
