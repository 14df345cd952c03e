package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/launchpad/internal/launch"
	"github.com/five82/launchpad/internal/prefs"
	"github.com/five82/launchpad/internal/selection"
	"github.com/five82/launchpad/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewHome View = iota
	ViewSettings
	ViewOnboarding
	ViewActivity
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Manager   *selection.Manager
	Resolver  *launch.Resolver
	Store     *state.Store
	Prefs     *prefs.File
	Logger    *zap.Logger
	LogPath   string
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	manager  *selection.Manager
	resolver *launch.Resolver
	store    *state.Store
	prefs    *prefs.File
	log      *zap.Logger
	logPath  string

	changes     <-chan struct{}
	unsubscribe func()

	// UI state
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Data state
	snapshot state.Snapshot
	routed   bool // start view chosen from the first loaded snapshot
	busy     bool // a mutation or launch is in flight

	// Cursors
	homeCursor       int
	settingsCursor   int
	onboardingCursor int

	activity activityState

	// Overlays
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model. Manager, Resolver and Store must be
// set; Run checks this.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = prefs.DefaultTheme()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:         ctx,
		manager:     opts.Manager,
		resolver:    opts.Resolver,
		store:       opts.Store,
		prefs:       opts.Prefs,
		log:         logger,
		logPath:     opts.LogPath,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		spinner:     sp,
		theme:       GetTheme(themeName),
		currentView: ViewHome,
	}
	if m.store != nil {
		m.changes, m.unsubscribe = m.store.Subscribe()
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store), waitForChangeCmd(m.changes, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.initActivityViewport()
		}
		m.ready = true
		m.resizeActivityViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		return m, m.applySnapshot(state.Snapshot(msg))

	case changeMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, tea.Batch(cmd, waitForChangeCmd(m.changes, m.store))

	case noticeExpiredMsg:
		// Re-render; View drops the expired notice.
		return m, nil

	case launchDoneMsg:
		m.setBusy(false)
		if notice := msg.attempt.Notice(); notice != "" {
			m.store.ShowNotice(notice)
		}
		return m, nil

	case mutationDoneMsg:
		m.setBusy(false)
		if msg.err != nil {
			m.log.Warn("selection change not saved", zap.String("op", msg.op), zap.Error(msg.err))
			m.store.RecordError(msg.err)
			m.store.ShowNotice("Couldn't save your apps")
		} else {
			m.log.Debug("selection changed", zap.String("op", msg.op), zap.Strings("ids", msg.state.IDs))
			m.store.RecordError(nil)
		}
		return m, nil

	case onboardedMsg:
		m.setBusy(false)
		if msg.err != nil {
			m.log.Warn("onboarding flag not saved", zap.Error(msg.err))
			m.store.ShowNotice("Couldn't save your apps")
			return m, nil
		}
		m.currentView = ViewHome
		m.homeCursor = 0
		return m, nil

	case confirmResetMsg:
		return m.mutate("reset", m.manager.Reset)

	case activityMsg:
		m.handleActivity(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	if m.snapshot.Loading {
		return m, nil
	}

	switch m.currentView {
	case ViewHome:
		return m.handleHomeKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewOnboarding:
		return m.handleOnboardingKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetTheme(m.theme.Name); err != nil {
		m.log.Warn("theme not saved", zap.String("theme", m.theme.Name), zap.Error(err))
	}
}

// applySnapshot stores snap, routes to the start view once loading is done
// and schedules a redraw for when the notice expires.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	m.snapshot = snap
	if !m.routed && !snap.Loading {
		m.routed = true
		if !snap.Onboarded {
			m.currentView = ViewOnboarding
		}
	}
	m.clampCursors()

	if snap.ActiveNotice(m.store.Now()) == "" {
		return nil
	}
	return noticeTimerCmd(snap.NoticeUntil.Sub(m.store.Now()))
}

// setBusy disables mutation and launch controls while an operation runs.
func (m *Model) setBusy(busy bool) {
	m.busy = busy
	m.snapshot.Busy = busy
	if m.store != nil {
		m.store.SetBusy(busy)
	}
}

func (m Model) mutate(op string, fn mutation) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.setBusy(true)
	return m, mutateCmd(m.ctx, op, fn)
}

func (m *Model) clampCursors() {
	m.homeCursor = clamp(m.homeCursor, len(m.snapshot.Apps))
	m.settingsCursor = clamp(m.settingsCursor, m.settingsRowCount())
	m.onboardingCursor = clamp(m.onboardingCursor, m.catalogLen())
}

func (m Model) catalogLen() int {
	if m.manager == nil {
		return 0
	}
	return m.manager.Catalog().Len()
}

func clamp(cursor, n int) int {
	if n <= 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Manager == nil || opts.Resolver == nil || opts.Store == nil {
		return errors.New("ui requires a selection manager, resolver and store")
	}
	m := New(opts)
	defer m.unsubscribe()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// Messages

type snapshotMsg state.Snapshot

type changeMsg state.Snapshot

type noticeExpiredMsg struct{}

type launchDoneMsg struct {
	attempt launch.Attempt
}

type mutationDoneMsg struct {
	op    string
	state selection.State
	err   error
}

type onboardedMsg struct {
	err error
}

// Commands

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// waitForChangeCmd blocks until the store changes. A closed channel ends
// the wait loop.
func waitForChangeCmd(changes <-chan struct{}, store *state.Store) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changeMsg(store.Snapshot())
	}
}

func noticeTimerCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = time.Millisecond
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}

func mutateCmd(ctx context.Context, op string, fn mutation) tea.Cmd {
	return func() tea.Msg {
		s, err := fn(ctx)
		return mutationDoneMsg{op: op, state: s, err: err}
	}
}

func finishOnboardingCmd(file *prefs.File, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		if file != nil {
			if err := file.SetOnboarded(true); err != nil {
				return onboardedMsg{err: err}
			}
		}
		store.SetOnboarded(true)
		return onboardedMsg{}
	}
}
