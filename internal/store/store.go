package store

import (
	"context"

	"github.com/nhle/notifywatch/internal/model"
)

// History archives the notifications a client rendered. It is write-behind
// only: nothing read from it ever feeds back into deduplication.
type History interface {
	// StartSession registers a new client session polling endpoint and
	// returns its generated ID.
	StartSession(ctx context.Context, endpoint string) (string, error)

	// RecordRendered stores the given entries. An entry already recorded
	// for the same session and notification ID is left untouched.
	RecordRendered(ctx context.Context, entries []model.HistoryEntry) error

	// GetRecent returns at most limit entries across all sessions, most
	// recently seen first.
	GetRecent(ctx context.Context, limit int) ([]model.HistoryEntry, error)

	Close() error
}
