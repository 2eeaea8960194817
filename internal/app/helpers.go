package app

import (
	"time"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/model"
)

// historyEntries converts rendered items into archive rows for sessionID.
// All entries share seenAt.
func historyEntries(sessionID string, items []inbox.Item, seenAt time.Time) []model.HistoryEntry {
	entries := make([]model.HistoryEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.HistoryEntry{
			SessionID:      sessionID,
			NotificationID: it.ID,
			Kind:           it.Kind,
			Sender:         it.Sender,
			Summary:        it.Summary(),
			CreatedAt:      it.CreatedAt,
			Unread:         it.Unread,
			FirstSeenAt:    seenAt,
		})
	}
	return entries
}
