package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// View switching
	Settings key.Binding
	Activity key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Home actions
	Launch key.Binding
	Quick  key.Binding

	// Settings actions
	MoveUp   key.Binding
	MoveDown key.Binding
	Remove   key.Binding
	Add      key.Binding
	Reset    key.Binding

	// Onboarding actions
	Toggle   key.Binding
	Continue key.Binding

	// Modal
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to launcher"),
		),

		// View switching
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Customise apps"),
		),
		Activity: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Activity log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Home actions
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Launch app"),
		),
		Quick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Launch by position"),
		),

		// Settings actions
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K/shift+up", "Move app earlier"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J/shift+down", "Move app later"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete", "backspace"),
			key.WithHelp("x", "Remove app"),
		),
		Add: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Add app"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset to defaults"),
		),

		// Onboarding actions
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle app"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Continue"),
		),

		// Modal
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Launch, k.Quick, k.Settings, k.Activity},
		{k.MoveUp, k.MoveDown, k.Remove, k.Add, k.Reset},
		{k.Toggle, k.Continue},
		{k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}

// homeHelp returns the bindings shown in the launcher footer.
func (k keyMap) homeHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Settings, k.Activity, k.Help, k.Quit}
}

// settingsHelp returns the bindings shown in the settings footer.
func (k keyMap) settingsHelp() []key.Binding {
	return []key.Binding{k.MoveUp, k.MoveDown, k.Remove, k.Add, k.Reset, k.Escape}
}

// onboardingHelp returns the bindings shown during first-run setup.
func (k keyMap) onboardingHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Continue, k.Quit}
}
