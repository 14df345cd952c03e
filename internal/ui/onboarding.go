package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleOnboardingKey processes keyboard input for first-run setup.
func (m Model) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.catalogLen()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.onboardingCursor > 0 {
			m.onboardingCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.onboardingCursor < n-1 {
			m.onboardingCursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.onboardingCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.onboardingCursor = clamp(n-1, n)
	case key.Matches(msg, m.keys.Toggle):
		apps := m.manager.Catalog().All()
		if m.onboardingCursor >= len(apps) {
			return m, nil
		}
		return m.mutate("toggle", toggleFn(m.manager, apps[m.onboardingCursor].ID))
	case key.Matches(msg, m.keys.Continue):
		if m.busy || !m.canContinue() {
			return m, nil
		}
		m.setBusy(true)
		return m, finishOnboardingCmd(m.prefs, m.store)
	}
	return m, nil
}

func (m Model) canContinue() bool {
	sel := m.snapshot.Selection
	return sel.Len() >= sel.Bounds.Min
}

// renderOnboarding renders the first-run app picker.
func (m Model) renderOnboarding() string {
	styles := m.theme.Styles()
	sel := m.snapshot.Selection
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("🚀 Pick your AI apps"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(fmt.Sprintf(
		"Choose %d–%d apps for your launcher. You can change this later.",
		sel.Bounds.Min, sel.Bounds.Max)))
	b.WriteString("\n\n")
	b.WriteString(m.renderCounter(styles, fmt.Sprintf("%d/%d selected", sel.Len(), sel.Bounds.Max)))
	b.WriteString("\n")

	for i, app := range m.manager.Catalog().All() {
		checked := sel.Contains(app.ID)
		box := "[ ]"
		if checked {
			box = "[✓]"
		}
		line := fmt.Sprintf("%s %s %s", box, app.Icon, app.Name)

		var row string
		switch {
		case i == m.onboardingCursor:
			row = styles.AccentText.Render("› ") + styles.Selected.Render(" "+line+" ")
		case !checked && sel.AtMax():
			row = "  " + styles.FaintText.Render(" "+line+" ")
		case checked:
			row = "  " + styles.BrandText(app.Color).Render(" "+line+" ")
		default:
			row = "  " + styles.Text.Render(" "+line+" ")
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.canContinue() {
		b.WriteString(styles.Button.Render("Let's go →"))
	} else {
		b.WriteString(styles.DisabledButton.Render(fmt.Sprintf("Pick at least %d apps", sel.Bounds.Min)))
	}
	return b.String()
}

// renderCounter shows the selection count, in the warning color at the cap.
func (m Model) renderCounter(styles Styles, text string) string {
	style := styles.AccentText.Bold(true)
	if m.snapshot.Selection.AtMax() {
		style = styles.WarningText.Bold(true)
	}
	return style.Render(text)
}

