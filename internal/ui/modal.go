package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

type confirmResetMsg struct{}

// confirmModal asks a yes/no question and emits onConfirm on yes.
type confirmModal struct {
	title     string
	body      string
	onConfirm tea.Msg
}

func newConfirmModal(title, body string, onConfirm tea.Msg) *confirmModal {
	return &confirmModal{title: title, body: body, onConfirm: onConfirm}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Confirm):
		confirmed := c.onConfirm
		return nil, func() tea.Msg { return confirmed }, true
	case key.Matches(keyMsg, keys.Cancel):
		return nil, nil, true
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Text.Bold(true).Render(c.title),
		"",
		styles.MutedText.Render(c.body),
		"",
		styles.Button.Render("y  Reset")+"  "+styles.DisabledButton.Render("n  Cancel"),
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Warning)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
