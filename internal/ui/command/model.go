package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifywatch/internal/theme"
)

// Names of the commands the palette understands.
const (
	Refresh = "refresh"
	List    = "list"
	Quit    = "quit"
)

var known = []string{Refresh, List, Quit}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg string

// Model is the command palette view.
type Model struct {
	input textinput.Model
	err   string
	width int
}

// New creates a new command palette model.
func New(width int) Model {
	ti := textinput.New()
	ti.Placeholder = "refresh, list, quit"
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(known)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input: ti,
		width: width,
	}
}

// Resolve maps user input onto a known command. Unique prefixes are
// accepted, so "r" means refresh.
func Resolve(input string) (string, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	if input == "q" {
		return Quit, true
	}

	var match string
	for _, name := range known {
		if strings.HasPrefix(name, input) {
			if match != "" {
				return "", false
			}
			match = name
		}
	}
	return match, match != ""
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		raw := m.input.Value()
		name, ok := Resolve(raw)
		if !ok {
			if strings.TrimSpace(raw) != "" {
				m.err = "unknown command: " + strings.TrimSpace(raw)
			}
			return m, nil
		}
		m.input.Reset()
		m.err = ""
		return m, func() tea.Msg {
			return CommandMsg(name)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("Command Palette"), m.input.View()}
	if m.err != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.err))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the command palette width.
func (m *Model) SetSize(width int) {
	m.width = width
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
