package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// renderMain renders header, the active view and the footer.
func (m Model) renderMain() string {
	contentHeight := max(m.height-2, 1)
	content := m.renderContent()

	body := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Padding(0, 1).
		Render(content)

	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	if m.snapshot.Loading {
		return m.renderLoading()
	}
	switch m.currentView {
	case ViewHome:
		return m.renderHome()
	case ViewSettings:
		return m.renderSettings()
	case ViewOnboarding:
		return m.renderOnboarding()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

func (m Model) renderLoading() string {
	styles := m.theme.Styles()
	return m.spinner.View() + " " + styles.MutedText.Render("Loading your apps...")
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("launchpad", styles.Logo)}
	if !m.snapshot.Loading {
		parts = append(parts, bg.Render(m.viewTitle(), styles.Text))
		sel := m.snapshot.Selection
		counter := styles.MutedText
		if sel.AtMax() {
			counter = styles.WarningText
		}
		parts = append(parts, bg.Render(fmt.Sprintf("%d/%d", sel.Len(), sel.Bounds.Max), counter))
	}
	if m.resolver != nil {
		parts = append(parts, bg.Render(string(m.resolver.Platform()), styles.FaintText))
	}
	if m.snapshot.Busy {
		parts = append(parts, bg.Render("working", styles.WarningText))
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, bg.Render("not saved", styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, sep))
}

func (m Model) viewTitle() string {
	switch m.currentView {
	case ViewSettings:
		return "Choose Apps"
	case ViewOnboarding:
		return "Welcome"
	case ViewActivity:
		return "Activity"
	default:
		return "Launcher"
	}
}

// renderFooter shows the active notice, otherwise the key hints for the view.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)

	if notice := m.snapshot.ActiveNotice(m.store.Now()); notice != "" {
		style := styles.InfoText.Bold(true)
		if strings.HasPrefix(notice, "Couldn't") {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(style.Render(notice))
	}

	var hint string
	var bindings []key.Binding
	switch m.currentView {
	case ViewHome:
		hint = m.homeFooterHint()
		bindings = m.keys.homeHelp()
	case ViewSettings:
		bindings = m.keys.settingsHelp()
	case ViewOnboarding:
		bindings = m.keys.onboardingHelp()
	default:
		bindings = []key.Binding{m.keys.Escape, m.keys.Settings, m.keys.Help, m.keys.Quit}
	}

	line := m.helpView(bindings)
	if hint != "" {
		line = styles.MutedText.Render(hint) + styles.MutedText.Render("  ·  ") + line
	}
	return styles.Footer.Width(m.width).Render(line)
}

// helpView renders short help in the theme's colors.
func (m Model) helpView(bindings []key.Binding) string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	h := m.help
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	return h.ShortHelpView(bindings)
}
