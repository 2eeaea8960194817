package portal

import "encoding/json"

// SummaryResponse is the body of GET /accounts/notifications/unread-json/.
type SummaryResponse struct {
	Success       bool                  `json:"success"`
	Error         string                `json:"error,omitempty"`
	UnreadCount   int                   `json:"unread_count"`
	Notifications []NotificationPayload `json:"notifications"`
}

// NotificationPayload is a single notification as sent by the portal.
// Identifiers may be JSON strings or numbers, and the hire payload may sit
// under "hiring" or "data"; "data" can also be a plain string, which is
// ignored.
type NotificationPayload struct {
	ID        json.RawMessage `json:"id"`
	Type      string          `json:"type"`
	Sender    string          `json:"sender"`
	CreatedAt string          `json:"created_at"`
	IsRead    bool            `json:"is_read"`
	Project   *ProjectPayload `json:"project,omitempty"`
	Hiring    json.RawMessage `json:"hiring,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ProjectPayload references the project a like notification is about.
type ProjectPayload struct {
	ID    json.RawMessage `json:"id"`
	Title string          `json:"title"`
}
