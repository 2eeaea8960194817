package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/keys"
	"github.com/nhle/notifywatch/internal/logger"
	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/source"
	"github.com/nhle/notifywatch/internal/store"
	appsync "github.com/nhle/notifywatch/internal/sync"
	"github.com/nhle/notifywatch/internal/theme"
	"github.com/nhle/notifywatch/internal/ui"
	"github.com/nhle/notifywatch/internal/ui/command"
	"github.com/nhle/notifywatch/internal/ui/detail"
	"github.com/nhle/notifywatch/internal/ui/feed"
	helpview "github.com/nhle/notifywatch/internal/ui/help"
)

// statusTickMsg re-renders the header so the "synced ... ago" label and
// poll errors stay current between cycles.
type statusTickMsg time.Time

// historyRecordedMsg reports the outcome of an archive write.
type historyRecordedMsg struct {
	count int
	err   error
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
)

// Options wires the root model to its collaborators.
type Options struct {
	Config  *model.AppConfig
	Poller  *appsync.Poller
	Session *inbox.Session

	// History is optional. When set, HistorySession names the session the
	// rendered notifications are recorded under.
	History        store.History
	HistorySession string

	Logger *logger.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the root Bubble Tea model. It routes views and, as the
// inbox.Page, exposes the bell and the feed to each poll cycle.
type Model struct {
	currentView    ViewState
	previousView   ViewState
	layout         ui.Layout
	keys           *keys.KeyMap
	bell           ui.Bell
	feed           feed.Model
	detail         detail.Model
	helpView       helpview.Model
	commandView    command.Model
	poller         *appsync.Poller
	session        *inbox.Session
	history        store.History
	historySession string
	logger         *logger.Logger
	now            func() time.Time
	showList       bool
	ready          bool
}

var _ inbox.Page = (*Model)(nil)

// New creates the root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Session == nil {
		opts.Session = inbox.NewSession()
	}

	info := helpview.Info{
		Endpoint: opts.Config.Server.BaseURL + opts.Config.Server.Endpoint,
		Interval: opts.Config.PollInterval().String(),
		History:  opts.Config.History.Path,
	}

	return Model{
		currentView:    ViewList,
		keys:           k,
		feed:           feed.New(k, 80, 22),
		detail:         detail.New(opts.Config.Server.BaseURL, k, 80, 22),
		helpView:       helpview.New(k, info, 80, 22),
		commandView:    command.New(80),
		poller:         opts.Poller,
		session:        opts.Session,
		history:        opts.History,
		historySession: opts.HistorySession,
		logger:         opts.Logger.WithComponent("app"),
		now:            opts.Now,
		showList:       opts.Config.Display.ShowList,
	}
}

// BadgeHost returns the bell, or nil before the header is laid out.
func (m *Model) BadgeHost() inbox.BadgeHost {
	if !m.ready {
		return nil
	}
	return &m.bell
}

// ListContainer returns the feed, or nil while the list is hidden or not
// laid out yet.
func (m *Model) ListContainer() inbox.ListContainer {
	if !m.ready || !m.showList {
		return nil
	}
	return &m.feed
}

// Init starts the poll loop and the header ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.poller.Start(),
		tickStatus(),
	)
}

func tickStatus() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := msg.Width, m.layout.ContentHeight()
		m.feed.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w)
		return m, nil

	case appsync.CycleMsg:
		added := m.session.Apply(&m, msg.Summary, m.now())
		msg.Ack()
		if len(added) > 0 {
			m.logger.Debug("notifications merged",
				"added", len(added),
				"known", m.session.Len())
		}
		return m, tea.Batch(
			m.poller.WaitForNextResult(),
			m.recordHistory(added),
		)

	case historyRecordedMsg:
		if msg.err != nil {
			m.logger.Warn("recording history failed", "error", msg.err)
		}
		return m, nil

	case statusTickMsg:
		return m, tickStatus()

	case feed.SelectedMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetItem(msg.Item)
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work outside the focused sub-view.
// It operates on the receiver so state changes survive.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.Type == tea.KeyCtrlC {
		m.poller.Stop()
		return tea.Quit, true
	}

	// The command palette owns every other key while open.
	if m.currentView == ViewCommand {
		if msg.Type == tea.KeyEsc {
			m.currentView = m.previousView
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m.commandView.Focus(), true

	case m.currentView == ViewHelp && key.Matches(msg, m.keys.Back):
		m.currentView = m.previousView
		return nil, true

	case m.currentView != ViewList:
		return nil, false

	case key.Matches(msg, m.keys.Quit):
		m.poller.Stop()
		return tea.Quit, true

	case key.Matches(msg, m.keys.Refresh):
		m.poller.Refresh()
		return nil, true

	case key.Matches(msg, m.keys.ToggleList):
		m.showList = !m.showList
		return nil, true
	}

	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		if m.showList {
			m.feed, cmd = m.feed.Update(msg)
		}
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command from the palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case command.Refresh:
		m.poller.Refresh()
	case command.List:
		m.showList = !m.showList
	case command.Quit:
		m.poller.Stop()
		return tea.Quit
	}
	return nil
}

// recordHistory archives newly rendered items when history is enabled.
func (m Model) recordHistory(items []inbox.Item) tea.Cmd {
	if m.history == nil || len(items) == 0 {
		return nil
	}

	h := m.history
	entries := historyEntries(m.historySession, items, m.now())
	return func() tea.Msg {
		err := h.RecordRendered(context.Background(), entries)
		return historyRecordedMsg{count: len(entries), err: err}
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("notifywatch", m.syncStatus(), m.bell)
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	}

	if !m.showList {
		return lipgloss.NewStyle().
			Width(m.layout.Width).
			Height(m.layout.ContentHeight()).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Notification list hidden.\nPress s to show it.")
	}
	return m.feed.View()
}

// syncStatus returns a short string describing the poll loop state.
func (m Model) syncStatus() string {
	status := m.poller.Status()

	switch status.State {
	case appsync.SyncRunning:
		return "syncing"
	case appsync.SyncError:
		if source.IsAuthError(status.Error) {
			return "⚠ signed out"
		}
		return "⚠ unreachable"
	}

	if status.LastSync.IsZero() {
		return "waiting"
	}
	elapsed := int64(m.now().Sub(status.LastSync) / time.Second)
	return fmt.Sprintf("synced %s ago", inbox.FormatElapsed(elapsed))
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.currentView == ViewList {
		if err := m.poller.Status().Error; source.IsAuthError(err) {
			return theme.ErrorStyle.Render("session rejected, restart with --login")
		}
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "esc back | j/k scroll"
	default:
		return "q quit | ? help | r poll now | s show/hide list | enter open"
	}
}
