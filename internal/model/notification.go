package model

import "time"

// Kind is the closed set of notification variants the client knows how
// to render. Any type string the server sends that is not listed here is
// treated as KindGeneric.
type Kind string

const (
	KindLike    Kind = "like"
	KindHire    Kind = "hire"
	KindGeneric Kind = "generic"
)

// DefaultJobTitle is shown for hire notifications that carry no job title
// in either payload location.
const DefaultJobTitle = "Job"

// ProjectRef identifies the project a like notification refers to.
type ProjectRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// HireDetails is the job offer attached to a hire notification. The server
// may send it in either of two locations; see ResolveHire.
type HireDetails struct {
	JobTitle string `json:"job_title"`
	Message  string `json:"message"`
}

// Notification is a single entry of the unread notification stream as
// reported by the portal. It is read-only on the client.
type Notification struct {
	// ID is the stable identifier, normalized to a string. It is the only
	// key used for deduplication.
	ID string `json:"id"`

	// Type is the raw type tag sent by the server.
	Type string `json:"type"`

	// Sender is the display name of the user who caused the notification.
	Sender string `json:"sender"`

	// CreatedAt is the raw ISO-8601 timestamp. It is parsed only when the
	// notification is rendered.
	CreatedAt string `json:"created_at"`

	// IsRead only affects emphasis when rendered.
	IsRead bool `json:"is_read"`

	// Project is set for like notifications.
	Project *ProjectRef `json:"project,omitempty"`

	// Hiring is the preferred hire payload location.
	Hiring *HireDetails `json:"hiring,omitempty"`

	// Data is the fallback hire payload location.
	Data *HireDetails `json:"data,omitempty"`
}

// Kind maps the raw type tag onto the closed variant set.
func (n Notification) Kind() Kind {
	switch Kind(n.Type) {
	case KindLike:
		return KindLike
	case KindHire:
		return KindHire
	default:
		return KindGeneric
	}
}

// ResolveHire picks the job title and message from the primary payload,
// falling back to the secondary one and finally to DefaultJobTitle and an
// empty message. Each field is resolved independently and an empty string
// counts as absent.
func ResolveHire(primary, fallback *HireDetails) (title, message string) {
	title = firstNonEmpty(
		DefaultJobTitle,
		func(h *HireDetails) string { return h.JobTitle },
		primary, fallback,
	)
	message = firstNonEmpty(
		"",
		func(h *HireDetails) string { return h.Message },
		primary, fallback,
	)
	return title, message
}

func firstNonEmpty(
	def string,
	field func(*HireDetails) string,
	sources ...*HireDetails,
) string {
	for _, h := range sources {
		if h == nil {
			continue
		}
		if v := field(h); v != "" {
			return v
		}
	}
	return def
}

// Summary is the decoded body of one poll of the unread notification
// endpoint.
type Summary struct {
	Success     bool
	UnreadCount int

	// Notifications are ordered newest-first, as sent by the server.
	Notifications []Notification
}

// HistoryEntry is one rendered notification recorded in the optional
// history archive.
type HistoryEntry struct {
	SessionID      string    `db:"session_id"`
	NotificationID string    `db:"notification_id"`
	Kind           Kind      `db:"kind"`
	Sender         string    `db:"sender"`
	Summary        string    `db:"summary"`
	CreatedAt      string    `db:"created_at"`
	Unread         bool      `db:"unread"`
	FirstSeenAt    time.Time `db:"first_seen_at"`
}
