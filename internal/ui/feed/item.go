package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/theme"
)

// Entry wraps an inbox.Item so it can be used in a bubbles/list.
type Entry struct {
	Item inbox.Item
}

// FilterValue returns the string used for fuzzy filtering.
func (e Entry) FilterValue() string { return e.Item.Summary() }

// Delegate implements list.ItemDelegate for notification entries. Each
// entry takes two lines: the headline and a secondary line holding the job
// message or the age.
type Delegate struct{}

// Height returns the number of lines each item takes.
func (d Delegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d Delegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single entry.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(Entry)
	if !ok {
		return
	}

	line := Headline(entry.Item) + "\n" + secondLine(entry.Item)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// Headline renders the first line of an entry: unread marker, sender,
// action, and the project link or job title.
func Headline(it inbox.Item) string {
	marker := " "
	if it.Unread {
		marker = theme.UnreadMarker
	}

	sender := it.Sender
	if it.Unread {
		sender = theme.UnreadStyle.Render(sender)
	}

	parts := []string{marker, sender}
	if it.Action != "" {
		parts = append(parts, it.Action)
	}
	if it.Link != nil {
		parts = append(parts, theme.LinkStyle.Render(it.Link.Label))
	}

	line := strings.Join(parts, " ")
	if it.Kind == model.KindHire {
		line += ": " + theme.KindStyle(string(it.Kind)).Render(it.JobTitle)
	}
	return line
}

func secondLine(it inbox.Item) string {
	var parts []string
	if it.Kind == model.KindHire && it.Message != "" {
		parts = append(parts, it.Message)
	}
	if it.Age != "" {
		parts = append(parts, it.Age+" ago")
	}
	return "  " + theme.MutedStyle.Render(strings.Join(parts, " · "))
}
