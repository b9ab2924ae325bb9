package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeRosterAPI struct {
	requests int
	resp     *tgbotapi.APIResponse
	err      error
}

func (f *fakeRosterAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return f.resp, f.err
}

func adminListResponse(t *testing.T) *tgbotapi.APIResponse {
	t.Helper()
	result := json.RawMessage(`[
		{"user":{"id":1},"status":"creator"},
		{"user":{"id":2},"status":"administrator"}
	]`)
	return &tgbotapi.APIResponse{Ok: true, Result: result}
}

func TestGetAdminsReloadsOnceOnMiss(t *testing.T) {
	api := &fakeRosterAPI{resp: adminListResponse(t)}
	c := New(api, NewMemoryBackend())

	roster, err := c.GetAdmins(context.Background(), -100123)
	if err != nil {
		t.Fatal(err)
	}
	if api.requests != 1 {
		t.Fatalf("requests = %v, want 1", api.requests)
	}
	if len(roster) != 2 {
		t.Fatalf("roster size = %v, want 2", len(roster))
	}
	if roster[1] != RankCreator {
		t.Errorf("roster[1] = %v, want creator", roster[1])
	}
	if roster[2] != RankAdministrator {
		t.Errorf("roster[2] = %v, want administrator", roster[2])
	}

	if _, err := c.GetAdmins(context.Background(), -100123); err != nil {
		t.Fatal(err)
	}
	if api.requests != 1 {
		t.Fatalf("requests after hit = %v, want 1", api.requests)
	}
}

func TestReloadReplacesWholesale(t *testing.T) {
	backend := NewMemoryBackend()
	if err := backend.Put(context.Background(), -100123, map[int64]Rank{7: RankAdministrator}); err != nil {
		t.Fatal(err)
	}
	api := &fakeRosterAPI{resp: adminListResponse(t)}
	c := New(api, backend)

	// Warm entry, no reload.
	roster, err := c.GetAdmins(context.Background(), -100123)
	if err != nil {
		t.Fatal(err)
	}
	if api.requests != 0 {
		t.Fatalf("requests = %v, want 0", api.requests)
	}
	if _, ok := roster[7]; !ok {
		t.Fatal("expected stale roster before reload")
	}

	if _, err := c.Reload(context.Background(), -100123, "test"); err != nil {
		t.Fatal(err)
	}
	roster, _, err = backend.Get(context.Background(), -100123)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := roster[7]; ok {
		t.Error("old entry survived reload")
	}
	if _, ok := roster[1]; !ok {
		t.Error("fresh roster missing after reload")
	}
}

func TestReloadNotApplicable(t *testing.T) {
	// The real client pairs the failed response with a non-nil error.
	api := &fakeRosterAPI{
		resp: &tgbotapi.APIResponse{Ok: false, ErrorCode: 400, Description: "Bad Request: chat not found"},
		err:  &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"},
	}
	c := New(api, NewMemoryBackend())

	_, err := c.GetAdmins(context.Background(), 42)
	if !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("err = %v, want ErrNotApplicable", err)
	}
}
