package filters

import (
	"aegisbot/model"
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	shellwords "github.com/mattn/go-shellwords"
	"github.com/sirupsen/logrus"
)

// RequiredTier gates a command registration to an allow-list level.
type RequiredTier int

const (
	TierNone RequiredTier = iota
	TierSudo
	TierDev
	TierOwner
)

type CommandSpec struct {
	Names         []string
	CaseSensitive bool
	Tier          RequiredTier
}

func (s CommandSpec) match(token string) (string, bool) {
	for _, name := range s.Names {
		if s.CaseSensitive {
			if token == name {
				return name, true
			}
		} else if strings.EqualFold(token, name) {
			return strings.ToLower(name), true
		}
	}
	return "", false
}

// MatchResult is the parsed command. Rest is the raw remainder, Args its
// shell-word split. It is written onto the handler's CommandConfig by the
// dispatcher rather than consumed here.
type MatchResult struct {
	Command string
	Rest    string
	Args    []string
}

// MatchCommand reports whether m invokes a command registered under spec.
// A false return carries no reply; the message simply is not a command
// for this registration.
func (f *Filters) MatchCommand(ctx context.Context, m *tgbotapi.Message, spec CommandSpec) (MatchResult, bool) {
	var res MatchResult
	if m == nil || m.From == nil {
		return res, false
	}
	if m.From.IsBot {
		return res, false
	}
	if m.ForwardFrom != nil || m.ForwardFromChat != nil {
		return res, false
	}

	switch spec.Tier {
	case TierOwner:
		if !f.opt.Tiers.IsOwner(m.From.ID) {
			return res, false
		}
	case TierDev:
		if !f.opt.Tiers.IsDev(m.From.ID) {
			return res, false
		}
	case TierSudo:
		if !f.opt.Tiers.IsSudo(m.From.ID) {
			return res, false
		}
	}

	text := m.Text
	if text == "" {
		text = m.Caption
	}
	if text == "" {
		return res, false
	}
	groups := f.re.FindStringSubmatch(text)
	if groups == nil {
		return res, false
	}
	command, ok := spec.match(groups[1])
	if !ok {
		return res, false
	}

	if m.Chat != nil && m.Chat.IsSuperGroup() {
		if !f.passDisabled(ctx, m, command) {
			return res, false
		}
	}

	res.Command = command
	res.Rest = groups[3]
	if res.Rest != "" {
		// Malformed quoting drops the args but keeps the match.
		if args, err := shellwords.Parse(res.Rest); err == nil {
			res.Args = args
		}
	}
	return res, true
}

// passDisabled applies the chat's disable record: a disabled command from
// anyone below administrator is rejected, and with the "del" action the
// triggering message is deleted best-effort.
func (f *Filters) passDisabled(ctx context.Context, m *tgbotapi.Message, command string) bool {
	record, err := f.disabled.Get(ctx, m.Chat.ID)
	if err != nil {
		logrus.Error(err)
		return true
	}
	if !record.IsDisabled(command) {
		return true
	}
	status := f.senderRank(m)
	if status == StatusCreator || status == StatusAdministrator {
		return true
	}
	if record.Action == model.ActionDel {
		_, _ = f.api.Request(tgbotapi.NewDeleteMessage(m.Chat.ID, m.MessageID))
	}
	return false
}

// senderRank resolves the sender's membership for the disable check.
// A non-participant sender is an anonymous admin, so administrator; a
// lookup against a non-group target counts as creator.
func (f *Filters) senderRank(m *tgbotapi.Message) MemberStatus {
	info, err := f.resolveMember(m.Chat, m.From.ID)
	if err != nil {
		logrus.Error(err)
		return StatusMember
	}
	switch info.Status {
	case StatusNotParticipant:
		return StatusAdministrator
	case StatusNotApplicable:
		return StatusCreator
	}
	return info.Status
}
