package inbox

import (
	"fmt"
	"time"

	"github.com/nhle/notifywatch/internal/model"
)

// Link is a navigable reference inside a rendered item.
type Link struct {
	Label string
	Href  string
}

// Item is a rendered notification, ready to be placed in a list. It is a
// snapshot: Age is computed once at render time and never refreshed.
type Item struct {
	ID     string
	Kind   model.Kind
	Unread bool
	Sender string

	// Action is the phrase following the sender, e.g. "wants to hire you".
	Action string

	// Link is set for like notifications that reference a project.
	Link *Link

	// JobTitle and Message are set for hire notifications.
	JobTitle string
	Message  string

	// CreatedAt is the raw server timestamp.
	CreatedAt string

	// Age is the relative time-ago string, empty if the timestamp was
	// unparseable.
	Age string
}

// Summary returns a single-line plain-text description of the item.
func (i Item) Summary() string {
	line := i.Sender
	if i.Action != "" {
		line += " " + i.Action
	}
	if i.Link != nil {
		line += " " + i.Link.Label
	}
	if i.Kind == model.KindHire {
		line += ": " + i.JobTitle
	}
	return line
}

// ProjectPath returns the portal path of a project's detail page.
func ProjectPath(projectID string) string {
	return fmt.Sprintf("/accounts/project/%s/details/", projectID)
}

// Render builds the list item for a notification. It has no side effects
// and never fails; unknown types use the generic template.
func Render(n model.Notification, now time.Time) Item {
	item := Item{
		ID:        n.ID,
		Kind:      n.Kind(),
		Unread:    !n.IsRead,
		Sender:    n.Sender,
		CreatedAt: n.CreatedAt,
		Age:       TimeAgo(n.CreatedAt, now),
	}

	switch item.Kind {
	case model.KindLike:
		renderLike(&item, n)
	case model.KindHire:
		renderHire(&item, n)
	default:
		// Generic: sender and age only.
	}

	return item
}

func renderLike(item *Item, n model.Notification) {
	// A like without a project degrades to the generic template.
	if n.Project == nil {
		return
	}
	item.Action = "liked your project"
	item.Link = &Link{
		Label: n.Project.Title,
		Href:  ProjectPath(n.Project.ID),
	}
}

func renderHire(item *Item, n model.Notification) {
	item.Action = "wants to hire you"
	item.JobTitle, item.Message = model.ResolveHire(n.Hiring, n.Data)
}
