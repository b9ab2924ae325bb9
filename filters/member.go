package filters

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MemberStatus is the tagged result of a membership lookup. The special
// conditions the platform reports as errors (no such participant, lookup
// against a private chat) are statuses here, not errors.
type MemberStatus int

const (
	StatusCreator MemberStatus = iota
	StatusAdministrator
	StatusMember
	StatusRestricted
	StatusLeft
	StatusKicked
	StatusNotParticipant
	StatusNotApplicable
)

type MemberInfo struct {
	Status        MemberStatus
	CanRestrict   bool
	CanPromote    bool
	CanChangeInfo bool
	CanPin        bool
}

func memberStatus(status string) MemberStatus {
	switch status {
	case "creator":
		return StatusCreator
	case "administrator":
		return StatusAdministrator
	case "restricted":
		return StatusRestricted
	case "left":
		return StatusLeft
	case "kicked":
		return StatusKicked
	}
	return StatusMember
}

// resolveMember looks up userID's membership in chat. Private chats have
// no membership to resolve and short-circuit to StatusNotApplicable
// before any network call. Transport failures are returned to the caller.
func (f *Filters) resolveMember(chat *tgbotapi.Chat, userID int64) (MemberInfo, error) {
	if chat == nil || chat.IsPrivate() {
		return MemberInfo{Status: StatusNotApplicable}, nil
	}
	req, err := f.api.Request(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: chat.ID,
			UserID: userID,
		},
	})
	// The client pairs API-level failures with a non-nil error, so the
	// response has to be judged first or the code mapping never runs.
	if req != nil && !req.Ok {
		if req.ErrorCode == 400 {
			return MemberInfo{Status: StatusNotParticipant}, nil
		}
		return MemberInfo{}, fmt.Errorf("get chat member: %v %v", req.ErrorCode, req.Description)
	}
	if err != nil {
		return MemberInfo{}, err
	}
	var member tgbotapi.ChatMember
	if err := json.Unmarshal(req.Result, &member); err != nil {
		return MemberInfo{}, err
	}
	info := MemberInfo{
		Status:        memberStatus(member.Status),
		CanRestrict:   member.CanRestrictMembers,
		CanPromote:    member.CanPromoteMembers,
		CanChangeInfo: member.CanChangeInfo,
		CanPin:        member.CanPinMessages,
	}
	if info.Status == StatusCreator {
		info.CanRestrict = true
		info.CanPromote = true
		info.CanChangeInfo = true
		info.CanPin = true
	}
	return info, nil
}
