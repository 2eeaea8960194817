package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifywatch/internal/keys"
	"github.com/nhle/notifywatch/internal/theme"
)

// Info is the connection summary printed under the shortcuts.
type Info struct {
	Endpoint string
	Interval string
	History  string
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	info   Info
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, info Info, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		info:   info,
		width:  width,
		height: height,
	}
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true

	history := m.info.History
	if history == "" {
		history = "off"
	}
	about := theme.MutedStyle.Render(fmt.Sprintf(
		"polling %s every %s\nhistory: %s\ncommands: :refresh  :list  :quit",
		m.info.Endpoint, m.info.Interval, history,
	))

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		about,
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
