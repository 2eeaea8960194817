package feed

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/keys"
	"github.com/nhle/notifywatch/internal/theme"
)

// SelectedMsg is sent when the user opens an entry.
type SelectedMsg struct {
	Item inbox.Item
}

// Model is the notification list panel. It implements inbox.ListContainer.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

var _ inbox.ListContainer = (*Model)(nil)

// New creates an empty feed.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{}, width, height)
	l.Title = "Notifications"
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("notification", "notifications")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Prepend inserts item at the top. The entry under the cursor stays
// selected, so a user reading older entries is not moved by new arrivals.
func (m *Model) Prepend(item inbox.Item) {
	hadItems := len(m.list.Items()) > 0
	selected := m.list.Index()

	m.list.InsertItem(0, Entry{Item: item})

	if hadItems {
		m.list.Select(selected + 1)
	} else {
		m.list.Select(0)
	}
}

// Len returns the number of entries.
func (m *Model) Len() int {
	return len(m.list.Items())
}

// Items returns the entries top to bottom.
func (m Model) Items() []inbox.Item {
	items := m.list.Items()
	out := make([]inbox.Item, 0, len(items))
	for _, it := range items {
		if e, ok := it.(Entry); ok {
			out = append(out, e.Item)
		}
	}
	return out
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (inbox.Item, bool) {
	e, ok := m.list.SelectedItem().(Entry)
	return e.Item, ok
}

// Update handles messages for the feed.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Select) {
		item, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedMsg{Item: item}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the feed.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notifications yet.\n\nNew ones appear here as they arrive.")
	}
	return m.list.View()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
