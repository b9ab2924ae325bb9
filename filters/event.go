package filters

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Event is a message or a callback query, normalized so the permission
// predicates see one shape: the chat the event happened in, the acting
// user and a message to reply to.
type Event struct {
	message  *tgbotapi.Message
	callback *tgbotapi.CallbackQuery
}

func MessageEvent(m *tgbotapi.Message) *Event {
	return &Event{message: m}
}

func CallbackEvent(q *tgbotapi.CallbackQuery) *Event {
	return &Event{callback: q}
}

func NewEvent(update tgbotapi.Update) *Event {
	if update.CallbackQuery != nil {
		return CallbackEvent(update.CallbackQuery)
	}
	return MessageEvent(update.Message)
}

// Msg is the message carrying the event; for a callback query it is the
// message the inline keyboard was attached to.
func (e *Event) Msg() *tgbotapi.Message {
	if e.callback != nil {
		return e.callback.Message
	}
	return e.message
}

// From is the acting user: the callback presser, not the author of the
// message the keyboard hangs off.
func (e *Event) From() *tgbotapi.User {
	if e.callback != nil {
		return e.callback.From
	}
	if e.message != nil {
		return e.message.From
	}
	return nil
}

// SenderChat is set when a channel or anonymous admin authored the event.
func (e *Event) SenderChat() *tgbotapi.Chat {
	m := e.Msg()
	if e.callback == nil && m != nil {
		return m.SenderChat
	}
	return nil
}
