package filters

import (
	"aegisbot/model"
	"context"
	"reflect"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var banSpec = CommandSpec{Names: []string{"ban"}}

func TestMatchCommand(t *testing.T) {
	tests := []struct {
		name    string
		message *tgbotapi.Message
		spec    CommandSpec
		want    MatchResult
		wantOK  bool
	}{
		{
			name:    "plain command with args",
			message: groupMsg("/ban spam user"),
			spec:    banSpec,
			want:    MatchResult{Command: "ban", Rest: "spam user", Args: []string{"spam", "user"}},
			wantOK:  true,
		},
		{
			name:    "alternate prefix",
			message: groupMsg("!ban spam"),
			spec:    banSpec,
			want:    MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK:  true,
		},
		{
			name:    "no args",
			message: groupMsg("/ban"),
			spec:    banSpec,
			want:    MatchResult{Command: "ban"},
			wantOK:  true,
		},
		{
			name:    "explicit bot mention",
			message: groupMsg("/ban@aegis_bot spam"),
			spec:    banSpec,
			want:    MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK:  true,
		},
		{
			name:    "mention of another bot",
			message: groupMsg("/ban@other_bot spam"),
			spec:    banSpec,
		},
		{
			name:    "case insensitive by default",
			message: groupMsg("/BAN spam"),
			spec:    banSpec,
			want:    MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK:  true,
		},
		{
			name:    "case sensitive registration",
			message: groupMsg("/BAN spam"),
			spec:    CommandSpec{Names: []string{"ban"}, CaseSensitive: true},
		},
		{
			name:    "unregistered command",
			message: groupMsg("/kick spam"),
			spec:    banSpec,
		},
		{
			name:    "not a command",
			message: groupMsg("hello there"),
			spec:    banSpec,
		},
		{
			name:    "empty text",
			message: groupMsg(""),
			spec:    banSpec,
		},
		{
			name: "caption counts as text",
			message: func() *tgbotapi.Message {
				m := groupMsg("")
				m.Caption = "/ban spam"
				return m
			}(),
			spec:   banSpec,
			want:   MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK: true,
		},
		{
			name: "bot sender rejected",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.From.IsBot = true
				return m
			}(),
			spec: banSpec,
		},
		{
			name: "missing sender rejected",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.From = nil
				return m
			}(),
			spec: banSpec,
		},
		{
			name: "forwarded message rejected",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.ForwardFrom = &tgbotapi.User{ID: 8}
				return m
			}(),
			spec: banSpec,
		},
		{
			name:    "owner tier rejects regular user",
			message: groupMsg("/ban spam"),
			spec:    CommandSpec{Names: []string{"ban"}, Tier: TierOwner},
		},
		{
			name: "owner tier accepts owner",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.From.ID = testOwnerID
				return m
			}(),
			spec:   CommandSpec{Names: []string{"ban"}, Tier: TierOwner},
			want:   MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK: true,
		},
		{
			name: "dev passes sudo tier",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.From.ID = testDevID
				return m
			}(),
			spec:   CommandSpec{Names: []string{"ban"}, Tier: TierSudo},
			want:   MatchResult{Command: "ban", Rest: "spam", Args: []string{"spam"}},
			wantOK: true,
		},
		{
			name: "sudo fails dev tier",
			message: func() *tgbotapi.Message {
				m := groupMsg("/ban spam")
				m.From.ID = testSudoID
				return m
			}(),
			spec: CommandSpec{Names: []string{"ban"}, Tier: TierDev},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFilters(&fakeAPI{}, nil, nil)
			got, ok := f.MatchCommand(context.Background(), tt.message, tt.spec)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Command != tt.want.Command || got.Rest != tt.want.Rest || !reflect.DeepEqual(got.Args, tt.want.Args) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMatchCommandTokenization(t *testing.T) {
	f := newTestFilters(&fakeAPI{}, nil, nil)

	m := groupMsg(`/ban "a b" c`)
	for i := 0; i < 2; i++ {
		got, ok := f.MatchCommand(context.Background(), m, banSpec)
		if !ok {
			t.Fatal("expected match")
		}
		if !reflect.DeepEqual(got.Args, []string{"a b", "c"}) {
			t.Fatalf("pass %d: args = %v", i, got.Args)
		}
	}

	// An unterminated quote keeps the match but drops the args.
	got, ok := f.MatchCommand(context.Background(), groupMsg(`/ban "a b`), banSpec)
	if !ok {
		t.Fatal("malformed quoting must not reject the match")
	}
	if len(got.Args) != 0 {
		t.Fatalf("args = %v, want none", got.Args)
	}
}

func TestMatchCommandDisabled(t *testing.T) {
	disabled := &fakeDisabled{record: model.DisabledCommands{
		Commands: map[string]struct{}{"ban": {}},
		Action:   model.ActionDel,
	}}

	t.Run("non-admin rejected and message deleted", func(t *testing.T) {
		api := &fakeAPI{member: &tgbotapi.ChatMember{Status: "member"}}
		f := newTestFilters(api, nil, disabled)
		_, ok := f.MatchCommand(context.Background(), groupMsg("/ban spam"), banSpec)
		if ok {
			t.Fatal("disabled command must not match for a plain member")
		}
		if len(api.deleted) != 1 {
			t.Fatalf("deletions = %v, want 1", len(api.deleted))
		}
		if api.deleted[0].MessageID != 7 {
			t.Errorf("deleted message id = %v", api.deleted[0].MessageID)
		}
	})

	t.Run("admin passes without deletion", func(t *testing.T) {
		api := &fakeAPI{member: &tgbotapi.ChatMember{Status: "administrator"}}
		f := newTestFilters(api, nil, disabled)
		_, ok := f.MatchCommand(context.Background(), groupMsg("/ban spam"), banSpec)
		if !ok {
			t.Fatal("admin must pass the disable check")
		}
		if len(api.deleted) != 0 {
			t.Fatalf("deletions = %v, want 0", len(api.deleted))
		}
	})

	t.Run("anonymous admin passes", func(t *testing.T) {
		// The membership lookup reports not-participant for anonymous
		// admins; that maps to administrator.
		api := &fakeAPI{memberErrCode: 400}
		f := newTestFilters(api, nil, disabled)
		_, ok := f.MatchCommand(context.Background(), groupMsg("/ban spam"), banSpec)
		if !ok {
			t.Fatal("anonymous admin must pass the disable check")
		}
	})

	t.Run("disable list ignored outside supergroups", func(t *testing.T) {
		api := &fakeAPI{}
		f := newTestFilters(api, nil, disabled)
		_, ok := f.MatchCommand(context.Background(), privateMsg("/ban spam"), banSpec)
		if !ok {
			t.Fatal("private chats have no disable list")
		}
		if api.requests != 0 {
			t.Fatalf("requests = %v, want 0", api.requests)
		}
	})
}
