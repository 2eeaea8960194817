package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/source"
)

// Adapter implements source.Source for the portal's unread summary endpoint.
type Adapter struct {
	client   *Client
	endpoint string
}

var _ source.Source = (*Adapter)(nil)

// NewAdapter creates a portal source that polls endpoint on client.
func NewAdapter(client *Client, endpoint string) *Adapter {
	if endpoint == "" {
		endpoint = model.DefaultEndpoint
	}
	return &Adapter{client: client, endpoint: endpoint}
}

// FetchSummary performs one GET of the unread summary endpoint.
func (a *Adapter) FetchSummary(ctx context.Context) (*model.Summary, error) {
	var resp SummaryResponse
	if err := a.client.Get(ctx, a.endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetching notification summary: %w", err)
	}
	return toSummary(resp), nil
}

// toSummary converts the wire response into the domain summary.
func toSummary(resp SummaryResponse) *model.Summary {
	summary := &model.Summary{
		Success:     resp.Success,
		UnreadCount: max(resp.UnreadCount, 0),
	}
	if len(resp.Notifications) > 0 {
		summary.Notifications = make([]model.Notification, 0, len(resp.Notifications))
		for _, p := range resp.Notifications {
			summary.Notifications = append(summary.Notifications, toNotification(p))
		}
	}
	return summary
}

// toNotification converts a single wire notification.
func toNotification(p NotificationPayload) model.Notification {
	n := model.Notification{
		ID:        normalizeID(p.ID),
		Type:      p.Type,
		Sender:    p.Sender,
		CreatedAt: p.CreatedAt,
		IsRead:    p.IsRead,
		Hiring:    decodeHire(p.Hiring),
		Data:      decodeHire(p.Data),
	}
	if p.Project != nil {
		n.Project = &model.ProjectRef{
			ID:    normalizeID(p.Project.ID),
			Title: p.Project.Title,
		}
	}
	return n
}

// normalizeID turns a JSON string or number into its string form. Numbers
// keep their literal text, so 7 and "7" map to the same key.
func normalizeID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return strings.Trim(string(raw), `"`)
}

// decodeHire decodes a hire payload location. Anything that is not a JSON
// object (null, a string, a number) yields nil.
func decodeHire(raw json.RawMessage) *model.HireDetails {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	return &model.HireDetails{
		JobTitle: stringField(fields["job_title"]),
		Message:  stringField(fields["message"]),
	}
}

// stringField returns the value of a JSON string, or "" for any other type.
func stringField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
