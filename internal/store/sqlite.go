package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/notifywatch/internal/model"
)

// SQLiteStore implements History using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

var _ History = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// StartSession inserts a session row keyed by a fresh UUID.
func (s *SQLiteStore) StartSession(ctx context.Context, endpoint string) (string, error) {
	id := uuid.New().String()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, endpoint, started_at) VALUES (?, ?, ?)",
		id, endpoint, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}

	return id, nil
}

// RecordRendered inserts a batch of rendered notifications in one
// transaction.
func (s *SQLiteStore) RecordRendered(
	ctx context.Context,
	entries []model.HistoryEntry,
) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT OR IGNORE INTO notifications (
			session_id, notification_id, kind, sender,
			summary, created_at, unread, first_seen_at
		) VALUES (
			:session_id, :notification_id, :kind, :sender,
			:summary, :created_at, :unread, :first_seen_at
		)`

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.FirstSeenAt.IsZero() {
			e.FirstSeenAt = time.Now()
		}
		e.FirstSeenAt = e.FirstSeenAt.UTC()

		if _, err := stmt.ExecContext(ctx, e); err != nil {
			return fmt.Errorf("recording notification %s: %w", e.NotificationID, err)
		}
	}

	return tx.Commit()
}

// GetRecent retrieves the most recently seen notifications.
func (s *SQLiteStore) GetRecent(
	ctx context.Context,
	limit int,
) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	var entries []model.HistoryEntry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT session_id, notification_id, kind, sender,
			summary, created_at, unread, first_seen_at
		FROM notifications
		ORDER BY first_seen_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent notifications: %w", err)
	}

	return entries, nil
}
