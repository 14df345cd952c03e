// Package prefs persists launcher preferences to ~/.config/launchpad/prefs.toml.
//
// The file is a small key-value store: the ordered list of selected apps,
// whether first-run onboarding has completed, and the UI theme.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme        string   `toml:"theme"`
	SelectedApps []string `toml:"selected_apps,omitempty"`
	Onboarded    bool     `toml:"onboarded"`
}

const (
	defaultPrefsPath = "~/.config/launchpad/prefs.toml"
	defaultTheme     = "Midnight"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// DefaultTheme returns the theme used when none is stored.
func DefaultTheme() string {
	return defaultTheme
}

// Load reads preferences from the given path, falling back to defaults when
// the file is missing or unreadable. Values that fail shape validation are
// dropped individually.
func Load(path string) Prefs {
	p := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return p
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return p
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return p
	}

	if theme, ok := raw["theme"].(string); ok && strings.TrimSpace(theme) != "" {
		p.Theme = strings.TrimSpace(theme)
	}
	if onboarded, ok := raw["onboarded"].(bool); ok {
		p.Onboarded = onboarded
	}
	p.SelectedApps = stringList(raw["selected_apps"])
	return p
}

// Save writes preferences to the given path, creating directories as needed.
// The file is replaced atomically.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

// File is a prefs file shared by the selection manager and the UI. Each
// setter is a read-modify-write under one lock, so concurrent setters never
// drop each other's keys and a finished write is seen by the next read.
type File struct {
	path string
	mu   sync.Mutex
}

// Open returns a File for path; empty uses DefaultPath.
func Open(path string) *File {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return &File{path: path}
}

// Path returns the configured path.
func (f *File) Path() string { return f.path }

// Read returns the current preferences.
func (f *File) Read() Prefs {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Load(f.path)
}

// LoadSelection returns the stored app ids, or nil when none are stored.
func (f *File) LoadSelection(context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resolved, err := resolvePath(f.path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(resolved); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat prefs: %w", err)
	}
	return Load(f.path).SelectedApps, nil
}

// SaveSelection stores the ordered app ids.
func (f *File) SaveSelection(_ context.Context, ids []string) error {
	return f.update(func(p *Prefs) { p.SelectedApps = slices.Clone(ids) })
}

// Onboarded reports whether first-run setup has completed.
func (f *File) Onboarded() bool {
	return f.Read().Onboarded
}

// SetOnboarded stores the first-run flag.
func (f *File) SetOnboarded(done bool) error {
	return f.update(func(p *Prefs) { p.Onboarded = done })
}

// SetTheme stores the theme name.
func (f *File) SetTheme(name string) error {
	return f.update(func(p *Prefs) { p.Theme = name })
}

func (f *File) update(fn func(*Prefs)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := Load(f.path)
	fn(&p)
	return Save(f.path, p)
}

// stringList accepts only an array whose every element is a string.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
