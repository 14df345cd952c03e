package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/launchpad/internal/logtail"
)

// activityLines is how much of the log the activity view reads.
const activityLines = 500

type activityState struct {
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
	loaded   bool
}

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

func loadActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, activityLines)
		return activityMsg{entries: entries, err: err}
	}
}

func (m *Model) initActivityViewport() {
	m.activity.viewport = viewport.New(m.width, m.activityHeight())
}

func (m *Model) resizeActivityViewport() {
	m.activity.viewport.Width = m.width
	m.activity.viewport.Height = m.activityHeight()
	m.refreshActivityContent()
}

// activityHeight leaves room for the header, title and footer lines.
func (m Model) activityHeight() int {
	return max(m.height-4, 1)
}

func (m Model) openActivity() (tea.Model, tea.Cmd) {
	m.currentView = ViewActivity
	if m.logPath == "" {
		m.activity.loaded = true
		m.activity.entries = nil
		m.refreshActivityContent()
		return m, nil
	}
	return m, loadActivityCmd(m.logPath)
}

func (m *Model) handleActivity(msg activityMsg) {
	m.activity.loaded = true
	m.activity.entries = msg.entries
	m.activity.err = msg.err
	m.refreshActivityContent()
	m.activity.viewport.GotoBottom()
}

// handleActivityKey processes keyboard input for the activity view.
func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewHome
		return m, nil
	case key.Matches(msg, m.keys.Settings):
		m.currentView = ViewSettings
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		return m.openActivity()
	case key.Matches(msg, m.keys.Top):
		m.activity.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.activity.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.activity.viewport, cmd = m.activity.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refreshActivityContent() {
	m.activity.viewport.SetContent(m.formatActivity())
}

func (m Model) formatActivity() string {
	styles := m.theme.Styles()
	switch {
	case m.activity.err != nil:
		return styles.DangerText.Render("Couldn't read the activity log: " + m.activity.err.Error())
	case !m.activity.loaded:
		return styles.MutedText.Render("Reading activity log...")
	case len(m.activity.entries) == 0:
		return styles.MutedText.Render("No activity yet. Launch an app to see it here.")
	}

	lines := make([]string, 0, len(m.activity.entries))
	for _, e := range m.activity.entries {
		lines = append(lines, m.formatEntry(styles, e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) formatEntry(styles Styles, e logtail.Entry) string {
	stamp := "        "
	if !e.Time.IsZero() {
		stamp = e.Time.Local().Format("15:04:05")
	}

	level := strings.ToUpper(e.Level)
	var levelStyle lipgloss.Style
	switch e.Level {
	case "error", "dpanic", "panic", "fatal":
		levelStyle = styles.DangerText
	case "warn":
		levelStyle = styles.WarningText
	case "debug":
		levelStyle = styles.FaintText
	default:
		levelStyle = styles.InfoText
	}

	parts := []string{
		styles.FaintText.Render(stamp),
		levelStyle.Render(padRight(level, 5)),
		styles.Text.Render(e.Message),
	}
	if summary := e.Summary(); summary != "" {
		parts = append(parts, styles.MutedText.Render(truncate(summary, max(m.width/2, 20))))
	}
	return strings.Join(parts, " ")
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	title := styles.Text.Bold(true).Render("Activity")
	if m.logPath != "" {
		title += "  " + styles.FaintText.Render(truncateMiddle(m.logPath, max(m.width-12, 10)))
	}
	return title + "\n" + m.activity.viewport.View()
}
