package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/launchpad/internal/catalog"
	"github.com/five82/launchpad/internal/launch"
)

const (
	gridColumns  = 3
	minTileWidth = 14
)

// handleHomeKey processes keyboard input for the launcher grid.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snapshot.Apps)

	switch {
	case key.Matches(msg, m.keys.Settings):
		m.currentView = ViewSettings
		m.settingsCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		return m.openActivity()
	case key.Matches(msg, m.keys.Left):
		if m.homeCursor > 0 {
			m.homeCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.homeCursor < n-1 {
			m.homeCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.homeCursor-gridColumns >= 0 {
			m.homeCursor -= gridColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.homeCursor+gridColumns < n {
			m.homeCursor += gridColumns
		}
	case key.Matches(msg, m.keys.Top):
		m.homeCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.homeCursor = clamp(n-1, n)
	case key.Matches(msg, m.keys.Launch):
		return m.launch(m.homeCursor)
	case key.Matches(msg, m.keys.Quick):
		return m.launch(int(msg.String()[0] - '1'))
	}
	return m, nil
}

// launch resolves the app at position i. Presses while another launch is
// running are dropped.
func (m Model) launch(i int) (tea.Model, tea.Cmd) {
	if m.busy || i < 0 || i >= len(m.snapshot.Apps) {
		return m, nil
	}
	m.homeCursor = i
	m.setBusy(true)
	return m, launchCmd(m.ctx, m.resolver, m.snapshot.Apps[i])
}

func launchCmd(ctx context.Context, r *launch.Resolver, app catalog.AppDescriptor) tea.Cmd {
	return func() tea.Msg {
		return launchDoneMsg{attempt: r.Launch(ctx, app)}
	}
}

// renderHome renders the grid of selected apps.
func (m Model) renderHome() string {
	styles := m.theme.Styles()
	apps := m.snapshot.Apps

	title := styles.Text.Bold(true).Render("AI Launcher")
	subtitle := styles.MutedText.Render("Press enter to launch")
	if len(apps) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "",
			styles.MutedText.Render("No apps selected. Press s to pick some."))
	}

	// Tile borders add two columns; the body is padded by one on each side.
	tileWidth := max((m.width-2)/gridColumns-2, minTileWidth)
	rows := make([]string, 0, (len(apps)+gridColumns-1)/gridColumns)
	for start := 0; start < len(apps); start += gridColumns {
		end := min(start+gridColumns, len(apps))
		tiles := make([]string, 0, gridColumns)
		for i := start; i < end; i++ {
			tiles = append(tiles, m.renderTile(styles, apps[i], i, tileWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

func (m Model) renderTile(styles Styles, app catalog.AppDescriptor, i, width int) string {
	focused := i == m.homeCursor
	name := truncate(app.Name, width-2)
	if focused && m.busy {
		name = m.spinner.View() + " " + name
	}
	body := strings.Join([]string{
		app.Icon,
		styles.BrandText(app.Color).Render(name),
		styles.FaintText.Render(fmt.Sprintf("%d", i+1)),
	}, "\n")
	return styles.TileStyle(app.Color, focused).
		Width(width).
		Padding(1, 0).
		Render(body)
}

// homeFooterHint mirrors the launcher's footer line.
func (m Model) homeFooterHint() string {
	return fmt.Sprintf("%d apps • press s to customise", len(m.snapshot.Apps))
}
