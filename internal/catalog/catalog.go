package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

// AppDescriptor describes one launchable assistant app.
type AppDescriptor struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// URLScheme is the deep-link prefix used to probe for and open the
	// installed app.
	URLScheme string `yaml:"url_scheme"`

	// StoreURL is the listing for the platform family whose deep-link
	// convention matches URLScheme (App Store).
	StoreURL string `yaml:"store_url"`

	// PlayStoreURL is the optional listing for the second platform family.
	PlayStoreURL string `yaml:"play_store_url"`

	Color string `yaml:"color"`
	Icon  string `yaml:"icon"`
}

// Sentinel errors returned by New.
var (
	ErrDuplicateID = errors.New("duplicate app id")
	ErrInvalidApp  = errors.New("invalid app descriptor")
	ErrEmpty       = errors.New("catalog is empty")
)

// Catalog is an immutable, ordered table of apps. The zero value is empty.
type Catalog struct {
	apps  []AppDescriptor
	index map[string]int
}

// New builds a catalog from apps in the given order.
func New(apps []AppDescriptor) (*Catalog, error) {
	if len(apps) == 0 {
		return nil, ErrEmpty
	}
	c := &Catalog{
		apps:  make([]AppDescriptor, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for i, app := range apps {
		app.ID = strings.TrimSpace(app.ID)
		switch {
		case app.ID == "":
			return nil, fmt.Errorf("app %d: %w: empty id", i, ErrInvalidApp)
		case strings.TrimSpace(app.Name) == "":
			return nil, fmt.Errorf("app %q: %w: empty name", app.ID, ErrInvalidApp)
		case strings.TrimSpace(app.URLScheme) == "":
			return nil, fmt.Errorf("app %q: %w: empty url scheme", app.ID, ErrInvalidApp)
		case strings.TrimSpace(app.StoreURL) == "":
			return nil, fmt.Errorf("app %q: %w: empty store url", app.ID, ErrInvalidApp)
		}
		if _, dup := c.index[app.ID]; dup {
			return nil, fmt.Errorf("app %q: %w", app.ID, ErrDuplicateID)
		}
		c.index[app.ID] = len(c.apps)
		c.apps = append(c.apps, app)
	}
	return c, nil
}

// MustNew is New for static fixtures; it panics on an invalid table.
func MustNew(apps []AppDescriptor) *Catalog {
	c, err := New(apps)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of apps.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.apps)
}

// Get returns the app with the given id.
func (c *Catalog) Get(id string) (AppDescriptor, bool) {
	if c == nil {
		return AppDescriptor{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return AppDescriptor{}, false
	}
	return c.apps[i], true
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// All returns a copy of every app in catalog order.
func (c *Catalog) All() []AppDescriptor {
	if c == nil {
		return nil
	}
	out := make([]AppDescriptor, len(c.apps))
	copy(out, c.apps)
	return out
}

// Resolve maps ids to descriptors preserving order. Unknown ids are dropped.
func (c *Catalog) Resolve(ids []string) []AppDescriptor {
	out := make([]AppDescriptor, 0, len(ids))
	for _, id := range ids {
		if app, ok := c.Get(id); ok {
			out = append(out, app)
		}
	}
	return out
}

// Excluding returns the apps, in catalog order, whose ids are not in ids.
func (c *Catalog) Excluding(ids []string) []AppDescriptor {
	skip := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		skip[id] = struct{}{}
	}
	var out []AppDescriptor
	for _, app := range c.All() {
		if _, ok := skip[app.ID]; !ok {
			out = append(out, app)
		}
	}
	return out
}

//go:embed apps.yaml
var builtinYAML []byte

type table struct {
	DefaultSelection []string        `yaml:"default_selection"`
	Apps             []AppDescriptor `yaml:"apps"`
}

var (
	builtinOnce     sync.Once
	builtinCatalog  *Catalog
	builtinDefaults []string
)

// Parse decodes a YAML catalog table and its default selection.
func Parse(data []byte) (*Catalog, []string, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, nil, fmt.Errorf("parse catalog: %w", err)
	}
	c, err := New(t.Apps)
	if err != nil {
		return nil, nil, err
	}
	for _, id := range t.DefaultSelection {
		if !c.Has(id) {
			return nil, nil, fmt.Errorf("default selection: unknown app %q", id)
		}
	}
	return c, t.DefaultSelection, nil
}

func loadBuiltin() {
	c, defaults, err := Parse(builtinYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	builtinCatalog = c
	builtinDefaults = defaults
}

// Default returns the built-in catalog compiled into the binary.
func Default() *Catalog {
	builtinOnce.Do(loadBuiltin)
	return builtinCatalog
}

// DefaultSelection returns a copy of the built-in default app order.
func DefaultSelection() []string {
	builtinOnce.Do(loadBuiltin)
	out := make([]string, len(builtinDefaults))
	copy(out, builtinDefaults)
	return out
}
