package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/store"
	"github.com/nhle/notifywatch/tests/testutil"
)

func entry(session, id string, seen time.Time) model.HistoryEntry {
	return model.HistoryEntry{
		SessionID:      session,
		NotificationID: id,
		Kind:           model.KindLike,
		Sender:         "alice",
		Summary:        "alice liked your project Site",
		CreatedAt:      "2024-05-01T12:00:00Z",
		Unread:         true,
		FirstSeenAt:    seen,
	}
}

func TestStartSessionGeneratesDistinctIDs(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	b, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if a == "" || a == b {
		t.Errorf("session IDs %q and %q are not distinct", a, b)
	}
}

func TestRecordRenderedAndGetRecent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	session, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err = s.RecordRendered(ctx, []model.HistoryEntry{
		entry(session, "1", base),
		entry(session, "2", base.Add(time.Second)),
	})
	if err != nil {
		t.Fatalf("RecordRendered: %v", err)
	}

	hire := entry(session, "3", base.Add(2*time.Second))
	hire.Kind = model.KindHire
	hire.Unread = false
	if err := s.RecordRendered(ctx, []model.HistoryEntry{hire}); err != nil {
		t.Fatalf("RecordRendered: %v", err)
	}

	got, err := s.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}

	wantOrder := []string{"3", "2", "1"}
	for i, id := range wantOrder {
		if got[i].NotificationID != id {
			t.Errorf("entry %d = %s, want %s", i, got[i].NotificationID, id)
		}
	}
	if got[0].Kind != model.KindHire || got[0].Unread {
		t.Errorf("hire entry = %+v", got[0])
	}
	if !got[1].Unread || got[1].Sender != "alice" {
		t.Errorf("like entry = %+v", got[1])
	}
	if !got[2].FirstSeenAt.Equal(base) {
		t.Errorf("FirstSeenAt = %v, want %v", got[2].FirstSeenAt, base)
	}
}

func TestRecordRenderedIgnoresDuplicates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	session, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	first := entry(session, "7", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	again := first
	again.Summary = "changed"

	if err := s.RecordRendered(ctx, []model.HistoryEntry{first}); err != nil {
		t.Fatalf("RecordRendered: %v", err)
	}
	if err := s.RecordRendered(ctx, []model.HistoryEntry{again}); err != nil {
		t.Fatalf("RecordRendered duplicate: %v", err)
	}

	got, err := s.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1", len(got))
	}
	if got[0].Summary != first.Summary {
		t.Errorf("Summary = %q, want first write kept", got[0].Summary)
	}
}

func TestRecordRenderedRequiresSession(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.RecordRendered(context.Background(), []model.HistoryEntry{
		entry("missing", "1", time.Now()),
	})
	if err == nil {
		t.Fatal("expected foreign key violation for unknown session")
	}
}

func TestGetRecentLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	session, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var batch []model.HistoryEntry
	for i, id := range []string{"a", "b", "c", "d"} {
		batch = append(batch, entry(session, id, base.Add(time.Duration(i)*time.Minute)))
	}
	if err := s.RecordRendered(ctx, batch); err != nil {
		t.Fatalf("RecordRendered: %v", err)
	}

	got, err := s.GetRecent(ctx, 2)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(got) != 2 || got[0].NotificationID != "d" || got[1].NotificationID != "c" {
		t.Errorf("GetRecent(2) = %+v", got)
	}

	none, err := s.GetRecent(ctx, 0)
	if err != nil || len(none) != 0 {
		t.Errorf("GetRecent(0) = %v, %v", none, err)
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	session, err := s.StartSession(ctx, model.DefaultEndpoint)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if err := s.RecordRendered(ctx, []model.HistoryEntry{entry(session, "1", time.Now())}); err != nil {
		t.Fatalf("RecordRendered: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetRecent(ctx, 5)
	if err != nil {
		t.Fatalf("GetRecent: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d entries after reopen, want 1", len(got))
	}
}
