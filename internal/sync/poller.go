package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notifywatch/internal/model"
	"github.com/nhle/notifywatch/internal/source"
)

// SyncState represents the current state of the poll loop.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus is a snapshot of the poll loop state.
type SyncStatus struct {
	State    SyncState
	LastSync time.Time
	Error    error
}

// CycleMsg is a tea.Msg carrying the summary of a successful poll cycle.
// The receiver must call Ack once the summary has been applied; the poller
// does not start its idle wait before that.
type CycleMsg struct {
	Summary *model.Summary

	ack  chan struct{}
	once *gosync.Once
}

// NewCycleMsg wraps a summary in an unacknowledged CycleMsg.
func NewCycleMsg(summary *model.Summary) CycleMsg {
	return CycleMsg{
		Summary: summary,
		ack:     make(chan struct{}),
		once:    &gosync.Once{},
	}
}

// Ack marks the cycle as applied. Calling it more than once is harmless.
func (m CycleMsg) Ack() {
	m.once.Do(func() { close(m.ack) })
}

// Acked returns a channel that is closed once Ack has been called.
func (m CycleMsg) Acked() <-chan struct{} {
	return m.ack
}

// Options configures a Poller.
type Options struct {
	// Interval is the idle time between the end of one cycle and the start
	// of the next. Defaults to model.DefaultPollInterval.
	Interval time.Duration

	// FetchTimeout bounds a single fetch. Zero leaves the fetch unbounded.
	FetchTimeout time.Duration

	Logger *slog.Logger
}

// Poller runs the poll loop: one fetch per cycle, delivery of the result to
// the UI, then a fixed idle interval. Cycles never overlap.
type Poller struct {
	src          source.Source
	interval     time.Duration
	fetchTimeout time.Duration
	logger       *slog.Logger
	resultCh     chan CycleMsg
	triggerCh    chan struct{}
	cancel       context.CancelFunc
	mu           gosync.Mutex
	status       SyncStatus
	running      bool
}

// New creates a new Poller for src.
func New(src source.Source, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = model.DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Poller{
		src:          src,
		interval:     opts.Interval,
		fetchTimeout: opts.FetchTimeout,
		logger:       opts.Logger,
		resultCh:     make(chan CycleMsg),
		triggerCh:    make(chan struct{}, 1),
	}
}

// Start launches the poll loop, whose first cycle begins immediately, and
// returns a tea.Cmd that waits for the first CycleMsg. Calling Start on a
// running poller only returns the wait command.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return p.waitForResult()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true
	p.mu.Unlock()

	go p.run(ctx)

	return p.waitForResult()
}

// Stop halts the poll loop. An in-flight fetch is cancelled.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.cancel()
	p.running = false
}

// Refresh cuts the current idle wait short. It never causes a cycle to
// overlap the one in progress.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already pending.
	}
}

// Status returns the current state of the poll loop.
func (p *Poller) Status() SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// run is the poll loop.
func (p *Poller) run(ctx context.Context) {
	for {
		p.cycle(ctx)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case <-p.triggerCh:
			timer.Stop()
		}
	}
}

// cycle performs one fetch and, when it yields a successful summary, hands
// it to the UI and waits for the acknowledgement.
func (p *Poller) cycle(ctx context.Context) {
	p.setState(SyncRunning)

	summary, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.setStatus(SyncError, err)
		if source.IsAuthError(err) {
			p.logger.Error("notifications poll error: session rejected, run with --login",
				"error", err)
			return
		}
		p.logger.Error("notifications poll error", "error", err)
		return
	}

	if !summary.Success {
		p.logger.Debug("notification summary reported no success")
		p.settle()
		return
	}

	msg := NewCycleMsg(summary)
	select {
	case p.resultCh <- msg:
	case <-ctx.Done():
		return
	}

	select {
	case <-msg.Acked():
	case <-ctx.Done():
		return
	}

	p.logger.Debug("poll cycle applied",
		"unread_count", summary.UnreadCount,
		"notifications", len(summary.Notifications))
	p.setStatus(SyncIdle, nil)
}

// fetch calls the source, bounded by the fetch timeout when one is set.
func (p *Poller) fetch(ctx context.Context) (*model.Summary, error) {
	if p.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.fetchTimeout)
		defer cancel()
	}
	return p.src.FetchSummary(ctx)
}

// setState changes the loop state without touching LastSync.
func (p *Poller) setState(state SyncState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.State = state
}

// settle returns the loop to idle and clears the previous error. LastSync
// is left alone since nothing was applied.
func (p *Poller) settle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status.State = SyncIdle
	p.status.Error = nil
}

// setStatus records the outcome of a cycle. A successful cycle also
// updates LastSync.
func (p *Poller) setStatus(state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == SyncIdle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// waitForResult returns a tea.Cmd that waits for the next CycleMsg.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return <-p.resultCh
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next cycle result.
// It should be returned after handling a CycleMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
