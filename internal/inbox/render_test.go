package inbox

import (
	"testing"
	"time"

	"github.com/nhle/notifywatch/internal/model"
)

var renderNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestRenderLike(t *testing.T) {
	n := model.Notification{
		ID:        "7",
		Type:      "like",
		Sender:    "alice",
		CreatedAt: "2026-03-10T11:59:15Z",
		Project:   &model.ProjectRef{ID: "42", Title: "Portfolio Site"},
	}

	item := Render(n, renderNow)

	if item.Kind != model.KindLike {
		t.Errorf("Kind = %q, want like", item.Kind)
	}
	if !item.Unread {
		t.Error("expected unread item")
	}
	if item.Action != "liked your project" {
		t.Errorf("Action = %q", item.Action)
	}
	if item.Link == nil {
		t.Fatal("expected project link")
	}
	if item.Link.Label != "Portfolio Site" {
		t.Errorf("Link.Label = %q", item.Link.Label)
	}
	if item.Link.Href != "/accounts/project/42/details/" {
		t.Errorf("Link.Href = %q", item.Link.Href)
	}
	if item.Age != "45s" {
		t.Errorf("Age = %q, want 45s", item.Age)
	}
	if got := item.Summary(); got != "alice liked your project Portfolio Site" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestRenderLikeWithoutProject(t *testing.T) {
	item := Render(model.Notification{ID: "1", Type: "like", Sender: "bob"}, renderNow)
	if item.Link != nil {
		t.Errorf("expected no link, got %+v", item.Link)
	}
	if item.Action != "" {
		t.Errorf("Action = %q, want empty", item.Action)
	}
}

func TestRenderHire(t *testing.T) {
	tests := []struct {
		name        string
		n           model.Notification
		wantTitle   string
		wantMessage string
	}{
		{
			name: "hiring payload",
			n: model.Notification{
				Hiring: &model.HireDetails{JobTitle: "Backend Engineer", Message: "Let's talk"},
			},
			wantTitle:   "Backend Engineer",
			wantMessage: "Let's talk",
		},
		{
			name: "data fallback when hiring is null",
			n: model.Notification{
				Data: &model.HireDetails{JobTitle: "Intern", Message: "Hi"},
			},
			wantTitle:   "Intern",
			wantMessage: "Hi",
		},
		{
			name:        "neither populated",
			n:           model.Notification{},
			wantTitle:   "Job",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.n.ID = "9"
			tt.n.Type = "hire"
			tt.n.Sender = "recruiter"

			item := Render(tt.n, renderNow)

			if item.Kind != model.KindHire {
				t.Errorf("Kind = %q, want hire", item.Kind)
			}
			if item.Action != "wants to hire you" {
				t.Errorf("Action = %q", item.Action)
			}
			if item.JobTitle != tt.wantTitle {
				t.Errorf("JobTitle = %q, want %q", item.JobTitle, tt.wantTitle)
			}
			if item.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", item.Message, tt.wantMessage)
			}
		})
	}
}

func TestRenderGenericFallback(t *testing.T) {
	n := model.Notification{
		ID:        "3",
		Type:      "follow",
		Sender:    "carol",
		CreatedAt: "not a time",
		IsRead:    true,
		Project:   &model.ProjectRef{ID: "1", Title: "ignored"},
	}

	item := Render(n, renderNow)

	if item.Kind != model.KindGeneric {
		t.Errorf("Kind = %q, want generic", item.Kind)
	}
	if item.Unread {
		t.Error("read notification rendered as unread")
	}
	if item.Action != "" || item.Link != nil || item.JobTitle != "" {
		t.Errorf("generic item carries variant fields: %+v", item)
	}
	if item.Age != "" {
		t.Errorf("Age = %q, want empty for unparseable timestamp", item.Age)
	}
	if got := item.Summary(); got != "carol" {
		t.Errorf("Summary() = %q, want carol", got)
	}
}
