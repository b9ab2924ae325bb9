package filters

import (
	"aegisbot/cache"
	"aegisbot/config"
	"aegisbot/model"
	"context"
	"encoding/json"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	testBotID    = 999
	testOwnerID  = 1
	testDevID    = 2
	testSudoID   = 3
	testSenderID = 42
	testChatID   = -100123
)

type fakeAPI struct {
	member        *tgbotapi.ChatMember
	memberErrCode int
	requests      int
	deleted       []tgbotapi.DeleteMessageConfig
	sent          []tgbotapi.MessageConfig
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	switch v := c.(type) {
	case tgbotapi.DeleteMessageConfig:
		f.deleted = append(f.deleted, v)
		return &tgbotapi.APIResponse{Ok: true}, nil
	case tgbotapi.GetChatMemberConfig:
		if f.memberErrCode != 0 {
			// The real client returns the failed response and an error
			// together.
			return &tgbotapi.APIResponse{Ok: false, ErrorCode: f.memberErrCode},
				&tgbotapi.Error{Code: f.memberErrCode, Message: "Bad Request: user not found"}
		}
		raw, _ := json.Marshal(f.member)
		return &tgbotapi.APIResponse{Ok: true, Result: raw}, nil
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{MessageID: 1}, nil
}

func (f *fakeAPI) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Text
}

type fakeAdmins struct {
	roster map[int64]cache.Rank
	err    error
}

func (f *fakeAdmins) GetAdmins(context.Context, int64) (map[int64]cache.Rank, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

type fakeDisabled struct {
	record model.DisabledCommands
}

func (f *fakeDisabled) Get(context.Context, int64) (model.DisabledCommands, error) {
	return f.record, nil
}

func newTestFilters(api API, admins AdminLookup, disabled DisableLookup) *Filters {
	if admins == nil {
		admins = &fakeAdmins{}
	}
	if disabled == nil {
		disabled = &fakeDisabled{record: model.DisabledCommands{Action: model.ActionNone}}
	}
	return New(api, Options{
		BotID:       testBotID,
		BotUsername: "aegis_bot",
		Prefixes:    []string{"/", "!"},
		Tiers:       config.NewTiers(testOwnerID, []int64{testDevID}, []int64{testSudoID}),
	}, admins, disabled)
}

func groupMsg(text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 7,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: testChatID, Type: "supergroup"},
		From:      &tgbotapi.User{ID: testSenderID, FirstName: "Dana"},
	}
}

func privateMsg(text string) *tgbotapi.Message {
	m := groupMsg(text)
	m.Chat = &tgbotapi.Chat{ID: testSenderID, Type: "private"}
	return m
}
