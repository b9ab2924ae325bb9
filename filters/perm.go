package filters

import (
	"aegisbot/cache"
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// The permission predicates share one preamble: they only pass in
// supergroups, a channel sender (anonymous admin) always passes, and the
// configured allow-list tier bypasses the real check. A false return may
// carry a denial reply; a transport failure is logged and denies.

func (f *Filters) supergroupMsg(e *Event) *tgbotapi.Message {
	m := e.Msg()
	if m == nil || m.Chat == nil || !m.Chat.IsSuperGroup() {
		return nil
	}
	return m
}

func (f *Filters) cachedAdmins(ctx context.Context, m *tgbotapi.Message) (map[int64]cache.Rank, bool) {
	admins, err := f.admins.GetAdmins(ctx, m.Chat.ID)
	if err != nil {
		if errors.Is(err, cache.ErrNotApplicable) {
			// Settings flows also run in private chats where group
			// admin semantics do not apply.
			return nil, true
		}
		logrus.Error(err)
		return nil, false
	}
	return admins, false
}

// BotIsAdmin checks the admin cache for the bot's own id.
func (f *Filters) BotIsAdmin(ctx context.Context, e *Event) bool {
	m := f.supergroupMsg(e)
	if m == nil {
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	admins, shortCircuit := f.cachedAdmins(ctx, m)
	if admins == nil {
		return shortCircuit
	}
	if _, ok := admins[f.opt.BotID]; ok {
		return true
	}
	f.reply(m, "I am not an admin in this group; mind promoting me?")
	return false
}

// UserIsAdmin checks the admin cache for the sender.
func (f *Filters) UserIsAdmin(ctx context.Context, e *Event) bool {
	m := f.supergroupMsg(e)
	if m == nil {
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsSudo(user.ID) {
		return true
	}
	admins, shortCircuit := f.cachedAdmins(ctx, m)
	if admins == nil {
		return shortCircuit
	}
	if _, ok := admins[user.ID]; ok {
		return true
	}
	f.reply(m, "You don't have the required admin rights to use this command!")
	return false
}

// UserIsOwner requires live creator status.
func (f *Filters) UserIsOwner(_ context.Context, e *Event) bool {
	m := f.supergroupMsg(e)
	if m == nil {
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsDev(user.ID) {
		return true
	}
	info, err := f.resolveMember(m.Chat, user.ID)
	if err != nil {
		logrus.Error(err)
		return false
	}
	if info.Status == StatusCreator {
		return true
	}
	if info.Status == StatusAdministrator {
		f.reply(m, "You're an admin only, stay in your limits!")
	} else {
		f.reply(m, "Do you think that you can execute owner commands?")
	}
	return false
}

func (f *Filters) UserCanRestrict(_ context.Context, e *Event) bool {
	m := f.supergroupMsg(e)
	if m == nil {
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsDev(user.ID) {
		return true
	}
	info, err := f.resolveMember(m.Chat, user.ID)
	if err != nil {
		logrus.Error(err)
		return false
	}
	if info.CanRestrict || info.Status == StatusCreator {
		return true
	}
	f.reply(m, "You don't have permissions to restrict users!")
	return false
}

func (f *Filters) UserCanPromote(_ context.Context, e *Event) bool {
	m := f.supergroupMsg(e)
	if m == nil {
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsDev(user.ID) {
		return true
	}
	info, err := f.resolveMember(m.Chat, user.ID)
	if err != nil {
		logrus.Error(err)
		return false
	}
	if info.CanPromote || info.Status == StatusCreator {
		return true
	}
	f.reply(m, "You don't have permissions to promote users!")
	return false
}

func (f *Filters) UserCanChangeInfo(_ context.Context, e *Event) bool {
	m := e.Msg()
	if m == nil || m.Chat == nil {
		return false
	}
	if !m.Chat.IsSuperGroup() {
		f.reply(m, "This command is made to be used in groups, not in PM!")
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsSudo(user.ID) {
		return true
	}
	info, err := f.resolveMember(m.Chat, user.ID)
	if err != nil {
		logrus.Error(err)
		return false
	}
	if info.CanChangeInfo || info.Status == StatusCreator {
		return true
	}
	f.reply(m, "You don't have: can_change_info permission!")
	return false
}

func (f *Filters) UserCanPin(_ context.Context, e *Event) bool {
	m := e.Msg()
	if m == nil || m.Chat == nil {
		return false
	}
	if !m.Chat.IsSuperGroup() {
		f.reply(m, "This command is made to be used in groups, not in PM!")
		return false
	}
	if e.SenderChat() != nil {
		return true
	}
	user := e.From()
	if user == nil {
		return false
	}
	if f.opt.Tiers.IsSudo(user.ID) {
		return true
	}
	info, err := f.resolveMember(m.Chat, user.ID)
	if err != nil {
		logrus.Error(err)
		return false
	}
	if info.CanPin || info.Status == StatusCreator {
		return true
	}
	f.reply(m, "You don't have: can_pin_messages permission!")
	return false
}
