package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/model"
	appsync "github.com/nhle/notifywatch/internal/sync"
	"github.com/nhle/notifywatch/internal/ui/feed"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type idleSource struct{}

func (idleSource) FetchSummary(context.Context) (*model.Summary, error) {
	return nil, errors.New("not polled in tests")
}

type recordingHistory struct {
	entries []model.HistoryEntry
}

func (h *recordingHistory) StartSession(context.Context, string) (string, error) {
	return "s-1", nil
}

func (h *recordingHistory) RecordRendered(_ context.Context, entries []model.HistoryEntry) error {
	h.entries = append(h.entries, entries...)
	return nil
}

func (h *recordingHistory) GetRecent(context.Context, int) ([]model.HistoryEntry, error) {
	return h.entries, nil
}

func (h *recordingHistory) Close() error { return nil }

func newTestModel(t *testing.T, history *recordingHistory) Model {
	t.Helper()

	cfg := &model.AppConfig{
		Server:  model.ServerConfig{BaseURL: "http://localhost:8000", Endpoint: model.DefaultEndpoint},
		Display: model.DisplayConfig{ShowList: true},
	}
	opts := Options{
		Config: cfg,
		Poller: appsync.New(idleSource{}, appsync.Options{Interval: time.Hour}),
		Now:    func() time.Time { return testNow },
	}
	if history != nil {
		opts.History = history
		opts.HistorySession = "s-1"
	}
	return New(opts)
}

func resize(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func summary(unread int, ids ...string) *model.Summary {
	s := &model.Summary{Success: true, UnreadCount: unread}
	for _, id := range ids {
		s.Notifications = append(s.Notifications, model.Notification{
			ID:        id,
			Type:      "like",
			Sender:    "user" + id,
			CreatedAt: "2024-05-01T11:59:00Z",
			Project:   &model.ProjectRef{ID: id, Title: "Project " + id},
		})
	}
	return s
}

func deliver(t *testing.T, m Model, s *model.Summary) (Model, tea.Cmd) {
	t.Helper()

	msg := appsync.NewCycleMsg(s)
	next, cmd := m.Update(msg)

	select {
	case <-msg.Acked():
	default:
		t.Fatal("cycle was not acknowledged")
	}
	return next.(Model), cmd
}

func feedIDs(m Model) string {
	var ids []string
	for _, it := range m.feed.Items() {
		ids = append(ids, it.ID)
	}
	return strings.Join(ids, ",")
}

func pressKey(t *testing.T, m Model, r rune) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model)
}

func TestTargetsAbsentBeforeLayout(t *testing.T) {
	m := newTestModel(t, nil)

	if m.BadgeHost() != nil {
		t.Error("BadgeHost before layout is not nil")
	}
	if m.ListContainer() != nil {
		t.Error("ListContainer before layout is not nil")
	}

	m, _ = deliver(t, m, summary(1, "1"))
	if m.session.Len() != 0 {
		t.Errorf("known = %d, want 0 while list is absent", m.session.Len())
	}
}

func TestCycleUpdatesBellAndFeed(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	m, cmd := deliver(t, m, summary(2, "2", "1"))
	if cmd == nil {
		t.Error("expected a command to keep listening for cycles")
	}

	if text, ok := m.bell.Badge(); !ok || text != "2" {
		t.Errorf("badge = %q, %v; want 2, true", text, ok)
	}
	if got := feedIDs(m); got != "2,1" {
		t.Errorf("feed = %s, want 2,1", got)
	}

	m, _ = deliver(t, m, summary(0, "3", "2", "1"))
	if _, ok := m.bell.Badge(); ok {
		t.Error("badge still shown with zero unread")
	}
	if got := feedIDs(m); got != "3,2,1" {
		t.Errorf("feed = %s, want 3,2,1", got)
	}

	items := m.feed.Items()
	if items[0].Age != "1m" {
		t.Errorf("Age = %q, want 1m", items[0].Age)
	}
}

func TestUnsuccessfulCycleChangesNothing(t *testing.T) {
	m := resize(t, newTestModel(t, nil))
	m, _ = deliver(t, m, summary(3, "1"))

	m, _ = deliver(t, m, &model.Summary{Success: false, UnreadCount: 9})

	if text, _ := m.bell.Badge(); text != "3" {
		t.Errorf("badge = %q, want 3", text)
	}
	if m.feed.Len() != 1 {
		t.Errorf("feed length = %d, want 1", m.feed.Len())
	}
}

func TestHiddenListSkipsMergeButUpdatesBadge(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	m = pressKey(t, m, 's')
	if m.ListContainer() != nil {
		t.Fatal("ListContainer not nil while hidden")
	}

	m, _ = deliver(t, m, summary(1, "1"))
	if text, ok := m.bell.Badge(); !ok || text != "1" {
		t.Errorf("badge = %q, %v; want 1, true", text, ok)
	}
	if m.session.Known("1") {
		t.Error("notification recorded while list hidden")
	}

	m = pressKey(t, m, 's')
	m, _ = deliver(t, m, summary(1, "1"))
	if got := feedIDs(m); got != "1" {
		t.Errorf("feed = %s, want 1", got)
	}
}

func TestRecordHistory(t *testing.T) {
	h := &recordingHistory{}
	m := resize(t, newTestModel(t, h))

	added := m.session.Apply(&m, summary(1, "5"), testNow)
	cmd := m.recordHistory(added)
	if cmd == nil {
		t.Fatal("expected a history command")
	}

	msg, ok := cmd().(historyRecordedMsg)
	if !ok || msg.err != nil || msg.count != 1 {
		t.Fatalf("msg = %#v", msg)
	}
	if len(h.entries) != 1 {
		t.Fatalf("recorded %d entries, want 1", len(h.entries))
	}

	e := h.entries[0]
	if e.SessionID != "s-1" || e.NotificationID != "5" || e.Kind != model.KindLike {
		t.Errorf("entry = %+v", e)
	}
	if e.Summary != "user5 liked your project Project 5" {
		t.Errorf("Summary = %q", e.Summary)
	}
	if !e.FirstSeenAt.Equal(testNow) {
		t.Errorf("FirstSeenAt = %v, want %v", e.FirstSeenAt, testNow)
	}

	if m.recordHistory(nil) != nil {
		t.Error("empty batch produced a command")
	}
}

func TestHistoryDisabled(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	if m.recordHistory([]inbox.Item{{ID: "1"}}) != nil {
		t.Error("command produced without a history store")
	}
}

func TestSelectOpensDetail(t *testing.T) {
	m := resize(t, newTestModel(t, nil))
	m, _ = deliver(t, m, summary(1, "1"))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.currentView != ViewDetail {
		t.Fatalf("view = %v, want ViewDetail", m.currentView)
	}
	if got := m.detail.URL(); got != "http://localhost:8000/accounts/project/1/details/" {
		t.Errorf("detail URL = %q", got)
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	next, _ = m.Update(cmd())
	if next.(Model).currentView != ViewList {
		t.Error("esc did not return to the list")
	}
}

func TestHelpToggle(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	m = pressKey(t, m, '?')
	if m.currentView != ViewHelp {
		t.Fatalf("view = %v, want ViewHelp", m.currentView)
	}
	m = pressKey(t, m, '?')
	if m.currentView != ViewList {
		t.Errorf("view = %v, want ViewList", m.currentView)
	}
}

func TestCommandPalette(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	m = pressKey(t, m, ':')
	if m.currentView != ViewCommand {
		t.Fatalf("view = %v, want ViewCommand", m.currentView)
	}

	m = pressKey(t, m, 'l')
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	next, _ = m.Update(cmd())
	m = next.(Model)
	if m.currentView != ViewList {
		t.Errorf("view = %v, want ViewList", m.currentView)
	}
	if m.showList {
		t.Error(":list did not hide the list")
	}
}

func TestQuitStopsPoller(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestSyncStatus(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	if got := m.syncStatus(); got != "waiting" {
		t.Errorf("syncStatus = %q, want waiting", got)
	}
	if !strings.Contains(m.View(), "notifywatch") {
		t.Error("header missing from view")
	}
}

func TestFeedSelectedMsgType(t *testing.T) {
	m := resize(t, newTestModel(t, nil))

	next, _ := m.Update(feed.SelectedMsg{Item: inbox.Item{ID: "x", Sender: "eve"}})
	if next.(Model).currentView != ViewDetail {
		t.Error("SelectedMsg did not open detail")
	}
}
