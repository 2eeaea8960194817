package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/keys"
	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model shows a single rendered notification.
type Model struct {
	item     *inbox.Item
	baseURL  string
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model. Links are resolved against baseURL.
func New(baseURL string, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		baseURL:  strings.TrimRight(baseURL, "/"),
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg {
			return BackMsg{}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.item == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notification selected")
	}

	return m.viewport.View()
}

// renderContent builds the detail content for the viewport.
func (m Model) renderContent() string {
	if m.item == nil {
		return ""
	}

	it := m.item
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(it.Summary()))

	kind := theme.KindStyle(string(it.Kind)).Render(strings.ToUpper(string(it.Kind)))
	state := theme.MutedStyle.Render("read")
	if it.Unread {
		state = theme.UnreadStyle.Render("unread")
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, kind, "  ", state), "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(10)
	row := func(label, value string) {
		sections = append(sections, metaStyle.Render(label+":")+value)
	}

	row("From", it.Sender)
	if it.Age != "" {
		row("Received", it.Age+" ago")
	}
	if it.Link != nil {
		row("Project", it.Link.Label)
		row("URL", theme.LinkStyle.Render(m.baseURL+it.Link.Href))
	}
	row("ID", it.ID)

	if it.Kind == model.KindHire {
		sep := lipgloss.NewStyle().Foreground(theme.ColorSubtle).
			Render(strings.Repeat("─", max(0, min(m.width-4, 80))))
		sections = append(sections, "", sep, "")

		header := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
		sections = append(sections, header.Render(it.JobTitle))

		msg := it.Message
		if msg == "" {
			msg = lipgloss.NewStyle().
				Foreground(theme.ColorGray).
				Italic(true).
				Render("No message")
		}
		sections = append(sections, lipgloss.NewStyle().Width(max(20, m.width-4)).Render(msg))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetItem updates the notification being displayed.
func (m *Model) SetItem(item inbox.Item) {
	m.item = &item
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// URL returns the absolute link of the displayed item, if any.
func (m Model) URL() string {
	if m.item == nil || m.item.Link == nil {
		return ""
	}
	return fmt.Sprintf("%s%s", m.baseURL, m.item.Link.Href)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.viewport.SetContent(m.renderContent())
}
