package inbox

import (
	"time"

	"github.com/nhle/notifywatch/internal/model"
)

// Session holds the identifiers of every notification rendered since the
// client started. It only grows and is not persisted.
//
// A Session is owned by the single goroutine that applies poll cycles and
// is not safe for concurrent use.
type Session struct {
	known map[string]struct{}
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{known: make(map[string]struct{})}
}

// Known reports whether the notification id has already been rendered.
func (s *Session) Known(id string) bool {
	_, ok := s.known[id]
	return ok
}

// Len returns the number of known identifiers.
func (s *Session) Len() int {
	return len(s.known)
}

// Merge renders the notifications of batch that are not yet known and
// prepends them to list. batch is newest-first; it is walked oldest-first so
// that the newest item ends up on top. A nil list renders and records
// nothing. The rendered items are returned in insertion order.
func (s *Session) Merge(
	list ListContainer,
	batch []model.Notification,
	now time.Time,
) []Item {
	if list == nil {
		return nil
	}

	var added []Item
	for i := len(batch) - 1; i >= 0; i-- {
		n := batch[i]
		if s.Known(n.ID) {
			continue
		}

		item := Render(n, now)
		list.Prepend(item)
		s.known[n.ID] = struct{}{}
		added = append(added, item)
	}

	return added
}

// Apply performs the page side of one poll cycle: the badge is set to the
// summary's unread count and the new notifications are merged into the
// list. Each target is looked up from page independently; an unsuccessful
// or nil summary changes nothing.
func (s *Session) Apply(
	page Page,
	summary *model.Summary,
	now time.Time,
) []Item {
	if summary == nil || !summary.Success {
		return nil
	}

	UpdateBadge(page.BadgeHost(), summary.UnreadCount)

	return s.Merge(page.ListContainer(), summary.Notifications, now)
}
