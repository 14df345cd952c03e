package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/launchpad/internal/catalog"
	"github.com/five82/launchpad/internal/selection"
)

type mutation = func(context.Context) (selection.State, error)

func moveFn(mgr *selection.Manager, id string, delta int) mutation {
	return func(ctx context.Context) (selection.State, error) { return mgr.Move(ctx, id, delta) }
}

func removeFn(mgr *selection.Manager, id string) mutation {
	return func(ctx context.Context) (selection.State, error) { return mgr.Remove(ctx, id) }
}

func addFn(mgr *selection.Manager, id string) mutation {
	return func(ctx context.Context) (selection.State, error) { return mgr.Add(ctx, id) }
}

func toggleFn(mgr *selection.Manager, id string) mutation {
	return func(ctx context.Context) (selection.State, error) { return mgr.Toggle(ctx, id) }
}

// availableApps returns catalog apps that are not selected, in catalog order.
func (m Model) availableApps() []catalog.AppDescriptor {
	if m.manager == nil {
		return nil
	}
	return m.manager.Catalog().Excluding(m.snapshot.Selection.IDs)
}

// settingsRowCount is the selected list followed by the add-more list.
func (m Model) settingsRowCount() int {
	return len(m.snapshot.Apps) + len(m.availableApps())
}

// handleSettingsKey processes keyboard input for the settings view.
func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.snapshot.Apps
	total := m.settingsRowCount()
	onSelected := m.settingsCursor < len(selected)

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewHome
		return m, nil
	case key.Matches(msg, m.keys.Activity):
		return m.openActivity()
	case key.Matches(msg, m.keys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.settingsCursor < total-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.settingsCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.settingsCursor = clamp(total-1, total)

	case key.Matches(msg, m.keys.MoveUp):
		if !onSelected || m.busy || m.settingsCursor == 0 {
			return m, nil
		}
		id := selected[m.settingsCursor].ID
		m.settingsCursor--
		return m.mutate("move", moveFn(m.manager, id, -1))

	case key.Matches(msg, m.keys.MoveDown):
		if !onSelected || m.busy || m.settingsCursor >= len(selected)-1 {
			return m, nil
		}
		id := selected[m.settingsCursor].ID
		m.settingsCursor++
		return m.mutate("move", moveFn(m.manager, id, 1))

	case key.Matches(msg, m.keys.Remove):
		if !onSelected || m.snapshot.Selection.AtMin() {
			return m, nil
		}
		return m.mutate("remove", removeFn(m.manager, selected[m.settingsCursor].ID))

	case key.Matches(msg, m.keys.Add):
		if onSelected || m.snapshot.Selection.AtMax() {
			return m, nil
		}
		available := m.availableApps()
		i := m.settingsCursor - len(selected)
		if i < 0 || i >= len(available) {
			return m, nil
		}
		return m.mutate("add", addFn(m.manager, available[i].ID))

	case key.Matches(msg, m.keys.Reset):
		if m.busy {
			return m, nil
		}
		m.modal = newConfirmModal(
			"Reset to defaults?",
			"Your launcher goes back to the default six apps.",
			confirmResetMsg{},
		)
	}
	return m, nil
}

// renderSettings renders the selected list and the add-more list.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()
	sel := m.snapshot.Selection
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Choose Apps"))
	b.WriteString("  ")
	b.WriteString(m.renderCounter(styles, fmt.Sprintf("%d/%d", sel.Len(), sel.Bounds.Max)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("K/J to reorder, x to remove, r to reset"))
	b.WriteString("\n\n")

	header := "YOUR LAUNCHER"
	if sel.AtMin() {
		header += fmt.Sprintf(" (at least %d)", sel.Bounds.Min)
	}
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")
	for i, app := range m.snapshot.Apps {
		line := fmt.Sprintf("%d. %s %s", i+1, app.Icon, app.Name)
		b.WriteString(m.renderRow(styles, i, line, styles.BrandText(app.Color)))
		b.WriteString("\n")
	}

	available := m.availableApps()
	if len(available) == 0 {
		return b.String()
	}

	b.WriteString("\n")
	header = "ADD MORE"
	rowStyle := styles.Text
	if sel.AtMax() {
		header += " (limit reached)"
		rowStyle = styles.FaintText
	}
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")
	offset := len(m.snapshot.Apps)
	for i, app := range available {
		line := fmt.Sprintf("+ %s %s", app.Icon, app.Name)
		b.WriteString(m.renderRow(styles, offset+i, line, rowStyle))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRow(styles Styles, row int, text string, style lipgloss.Style) string {
	if row == m.settingsCursor {
		return styles.AccentText.Render("› ") + styles.Selected.Render(" "+text+" ")
	}
	return "  " + style.Render(" "+text+" ")
}
