package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Midnight", "Daylight", "Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames()[%d] = %q, want %q", i, names[i], want[i])
		}
		if _, ok := themes[names[i]]; !ok {
			t.Fatalf("theme %q listed but not defined", names[i])
		}
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Midnight"); got != "Daylight" {
		t.Fatalf("NextTheme(Midnight) = %q, want Daylight", got)
	}
	if got := NextTheme("Slate"); got != "Midnight" {
		t.Fatalf("NextTheme(Slate) = %q, want Midnight", got)
	}
	if got := NextTheme("Unknown"); got != "Midnight" {
		t.Fatalf("NextTheme(Unknown) = %q, want Midnight", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Midnight" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Midnight (fallback)", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background": th.Background, "Surface": th.Surface, "SurfaceAlt": th.SurfaceAlt,
			"SelectionBg": th.SelectionBg, "SelectionText": th.SelectionText,
			"Border": th.Border, "Text": th.Text, "Muted": th.Muted, "Faint": th.Faint,
			"Inverted": th.Inverted, "Accent": th.Accent, "Warning": th.Warning, "Danger": th.Danger,
		}
		for field, value := range colors {
			if value == "" {
				t.Fatalf("theme %s has empty %s", name, field)
			}
		}
	}
}
