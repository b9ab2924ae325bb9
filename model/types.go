package model

import (
	"time"
)

const AfkCollectionName = "afk"

type AfkRecord struct {
	UserID     int64     `json:"user_id" bson:"user_id"`
	Reason     string    `json:"reason" bson:"reason"`
	CreateTime time.Time `json:"create_time" bson:"create_time"`
}

type MysqlAfkRecord struct {
	UserID     int64 `gorm:"primaryKey"`
	Reason     string
	CreateTime string
}

func (MysqlAfkRecord) TableName() string {
	return AfkCollectionName
}

const (
	ActionNone = "none"
	ActionDel  = "del"
)

// DisabledCommands is the per-chat disable record: the set of command
// names an admin switched off plus what to do with offending messages.
type DisabledCommands struct {
	Commands map[string]struct{}
	Action   string
}

func (d DisabledCommands) IsDisabled(command string) bool {
	_, ok := d.Commands[command]
	return ok
}
