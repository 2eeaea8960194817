package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	endpoint   TEXT NOT NULL,
	started_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	session_id      TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	notification_id TEXT NOT NULL,
	kind            TEXT NOT NULL,
	sender          TEXT NOT NULL DEFAULT '',
	summary         TEXT NOT NULL DEFAULT '',
	created_at      TEXT NOT NULL DEFAULT '',
	unread          INTEGER NOT NULL DEFAULT 1 CHECK(unread IN (0, 1)),
	first_seen_at   DATETIME NOT NULL,
	PRIMARY KEY (session_id, notification_id)
);

CREATE INDEX IF NOT EXISTS idx_notifications_first_seen ON notifications(first_seen_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_notifications_notification_id
	ON notifications(notification_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
