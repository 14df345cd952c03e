package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and tiles
	SurfaceAlt string // Secondary surfaces
	FocusBg    string // Focus/active states

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text     string
	Muted    string
	Faint    string
	Inverted string // text drawn on Accent
	Accent   string
	Success  string
	Warning  string
	Danger   string
	Info     string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Button: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.Inverted)).
			Bold(true).
			Padding(0, 2),

		DisabledButton: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 2),

		border: t.Border,
		text:   t.Text,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header         lipgloss.Style
	Footer         lipgloss.Style
	Logo           lipgloss.Style
	Selected       lipgloss.Style
	Button         lipgloss.Style
	DisabledButton lipgloss.Style

	border string
	text   string
}

// TileStyle returns the bordered box for an app tile. The border takes the
// app's brand color; focus thickens it.
func (s Styles) TileStyle(brand string, focused bool) lipgloss.Style {
	if brand == "" {
		brand = s.border
	}
	border := lipgloss.RoundedBorder()
	if focused {
		border = lipgloss.ThickBorder()
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(brand)).
		Foreground(lipgloss.Color(s.text)).
		Align(lipgloss.Center)
}

// BrandText renders text in the app's brand color.
func (s Styles) BrandText(brand string) lipgloss.Style {
	if brand == "" {
		return s.Text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(brand)).Bold(true)
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.SurfaceAlt = s.SurfaceAlt.Background(bg)

	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)

	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// Theme definitions

var themes = map[string]Theme{
	"Midnight": midnightTheme(),
	"Daylight": daylightTheme(),
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Midnight", "Daylight", "Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return midnightTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func midnightTheme() Theme {
	// iOS system dark palette
	return Theme{
		Name: "Midnight",

		Background: "#000000",
		Surface:    "#1C1C1E",
		SurfaceAlt: "#2C2C2E",
		FocusBg:    "#2C2C2E",

		SelectionBg:   "#0A84FF",
		SelectionText: "#FFFFFF",

		Border:      "#38383A",
		BorderMuted: "#2C2C2E",
		BorderFocus: "#0A84FF",

		Text:     "#FFFFFF",
		Muted:    "#8E8E93",
		Faint:    "#636366",
		Inverted: "#000000",
		Accent:   "#0A84FF",
		Success:  "#30D158",
		Warning:  "#FF9F0A",
		Danger:   "#FF453A",
		Info:     "#4DA3FF",
	}
}

func daylightTheme() Theme {
	// iOS system light palette
	return Theme{
		Name: "Daylight",

		Background: "#F2F2F7",
		Surface:    "#FFFFFF",
		SurfaceAlt: "#E5E5EA",
		FocusBg:    "#E5E5EA",

		SelectionBg:   "#007AFF",
		SelectionText: "#FFFFFF",

		Border:      "#C6C6C8",
		BorderMuted: "#E5E5EA",
		BorderFocus: "#007AFF",

		Text:     "#000000",
		Muted:    "#8E8E93",
		Faint:    "#AEAEB2",
		Inverted: "#FFFFFF",
		Accent:   "#007AFF",
		Success:  "#34C759",
		Warning:  "#FF9500",
		Danger:   "#FF3B30",
		Info:     "#4DA3FF",
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderMuted: "#212e3f", // bg2
		BorderFocus: "#719cd6", // blue

		Text:     "#cdcecf", // fg1
		Muted:    "#738091", // comment
		Faint:    "#71839b", // fg3
		Inverted: "#131a24", // bg0
		Accent:   "#719cd6", // blue
		Success:  "#81b29a", // green
		Warning:  "#dbc074", // yellow
		Danger:   "#c94f6d", // red
		Info:     "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3
		SurfaceAlt: "#2A2A37", // sumiInk4
		FocusBg:    "#2A2A37", // sumiInk4

		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		Border:      "#54546D", // sumiInk6
		BorderMuted: "#2A2A37", // sumiInk4
		BorderFocus: "#7E9CD8", // crystalBlue

		Text:     "#DCD7BA", // fujiWhite
		Muted:    "#C8C093", // oldWhite
		Faint:    "#727169", // fujiGray
		Inverted: "#16161D", // sumiInk0
		Accent:   "#7E9CD8", // crystalBlue
		Success:  "#98BB6C", // springGreen
		Warning:  "#E6C384", // carpYellow
		Danger:   "#E46876", // waveRed
		Info:     "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:     "#f1f5f9", // slate-100
		Muted:    "#94a3b8", // slate-400
		Faint:    "#64748b", // slate-500
		Inverted: "#020617", // slate-950
		Accent:   "#38bdf8", // sky-400
		Success:  "#22c55e", // green-500
		Warning:  "#f59e0b", // amber-500
		Danger:   "#ef4444", // red-500
		Info:     "#06b6d4", // cyan-500
	}
}
