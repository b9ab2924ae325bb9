// Package filters decides whether an incoming message may run a command:
// it matches the command syntax, applies the per-chat disable list and
// checks the sender's rank against the admin cache or a live membership
// lookup.
package filters

import (
	"aegisbot/cache"
	"aegisbot/config"
	"aegisbot/model"
	"context"
	"fmt"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the slice of the bot client the predicates need. Satisfied by
// *tgbotapi.BotAPI.
type API interface {
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
}

type AdminLookup interface {
	GetAdmins(ctx context.Context, chatID int64) (map[int64]cache.Rank, error)
}

type DisableLookup interface {
	Get(ctx context.Context, chatID int64) (model.DisabledCommands, error)
}

type Options struct {
	BotID       int64
	BotUsername string
	Prefixes    []string
	Tiers       config.Tiers
}

type Filters struct {
	api      API
	opt      Options
	admins   AdminLookup
	disabled DisableLookup
	re       *regexp.Regexp
}

func New(api API, opt Options, admins AdminLookup, disabled DisableLookup) *Filters {
	var prefixes strings.Builder
	for _, p := range opt.Prefixes {
		prefixes.WriteString(regexp.QuoteMeta(p))
	}
	expr := fmt.Sprintf(`^[%s](\w+)(@%s)?(?: |$)(.*)`, prefixes.String(), regexp.QuoteMeta(opt.BotUsername))
	return &Filters{
		api:      api,
		opt:      opt,
		admins:   admins,
		disabled: disabled,
		re:       regexp.MustCompile(expr),
	}
}

func (f *Filters) reply(m *tgbotapi.Message, text string) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	_, _ = f.api.Send(msg)
}
