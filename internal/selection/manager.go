package selection

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/launchpad/internal/catalog"
)

// Sentinel errors. Bounds violations are never errors; those calls are no-ops.
var (
	ErrUnknownApp     = errors.New("unknown app")
	ErrNotPermutation = errors.New("order is not a permutation of the selection")
)

// Option customises a Manager.
type Option func(*Manager)

// WithBounds overrides MinSelected/MaxSelected.
func WithBounds(b Bounds) Option {
	return func(m *Manager) { m.bounds = b }
}

// WithDefaults overrides the default ordered selection.
func WithDefaults(ids []string) Option {
	return func(m *Manager) { m.defaults = slices.Clone(ids) }
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.log = logger
		}
	}
}

// Manager owns the bounded, ordered, persisted set of selected app ids.
// It is the only writer of the persisted selection.
type Manager struct {
	catalog  *catalog.Catalog
	storage  Storage
	bounds   Bounds
	defaults []string
	log      *zap.Logger

	// mu serialises mutations including their storage writes, so writes reach
	// storage in the order they were applied.
	mu    sync.Mutex
	state State

	subsMu  sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// NewManager builds a Manager over cat. A nil storage keeps the selection in
// memory. Until Load is called the selection is the default set.
func NewManager(cat *catalog.Catalog, storage Storage, opts ...Option) (*Manager, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("selection manager requires a catalog")
	}
	m := &Manager{
		catalog: cat,
		storage: storage,
		bounds:  DefaultBounds(),
		log:     zap.NewNop(),
		subs:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.storage == nil {
		m.storage = NewMemoryStorage()
	}
	if m.defaults == nil {
		m.defaults = catalog.DefaultSelection()
	}

	if m.bounds.Min < 1 || m.bounds.Min > m.bounds.Max {
		return nil, fmt.Errorf("invalid selection bounds %d..%d", m.bounds.Min, m.bounds.Max)
	}
	if err := m.validate(m.defaults); err != nil {
		return nil, fmt.Errorf("default selection: %w", err)
	}

	m.state = m.defaultState()
	return m, nil
}

// Bounds returns the configured selection bounds.
func (m *Manager) Bounds() Bounds { return m.bounds }

// Catalog returns the catalog the manager validates against.
func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

// Load reads the persisted selection. Missing, unreadable or invalid values
// yield the default selection; nothing is written back.
func (m *Manager) Load(ctx context.Context) State {
	m.mu.Lock()
	ids, err := m.storage.LoadSelection(ctx)
	switch {
	case err != nil:
		m.log.Warn("load selection failed; using defaults", zap.Error(err))
		m.state = m.defaultState()
	case ids == nil:
		m.state = m.defaultState()
	default:
		if verr := m.validate(ids); verr != nil {
			m.log.Warn("stored selection invalid; using defaults",
				zap.Strings("ids", ids), zap.Error(verr))
			m.state = m.defaultState()
		} else {
			m.state = State{IDs: slices.Clone(ids), Bounds: m.bounds}
		}
	}
	snap := m.state.Clone()
	m.mu.Unlock()

	m.notify(snap)
	return snap
}

// Current returns the selection without touching storage.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Apps resolves the current selection to descriptors, in order.
func (m *Manager) Apps() []catalog.AppDescriptor {
	return m.catalog.Resolve(m.Current().IDs)
}

// Toggle removes id if it is selected, otherwise appends it. Either branch is
// a no-op when it would breach the bounds.
func (m *Manager) Toggle(ctx context.Context, id string) (State, error) {
	if !m.catalog.Has(id) {
		return m.Current(), fmt.Errorf("toggle %q: %w", id, ErrUnknownApp)
	}
	return m.apply(ctx, "toggle", func(ids []string) ([]string, bool) {
		if slices.Contains(ids, id) {
			return m.remove(ids, id)
		}
		return m.add(ids, id)
	})
}

// Add appends id unless it is already selected or the selection is full.
func (m *Manager) Add(ctx context.Context, id string) (State, error) {
	if !m.catalog.Has(id) {
		return m.Current(), fmt.Errorf("add %q: %w", id, ErrUnknownApp)
	}
	return m.apply(ctx, "add", func(ids []string) ([]string, bool) {
		return m.add(ids, id)
	})
}

// Remove drops id unless that would take the selection below the floor.
func (m *Manager) Remove(ctx context.Context, id string) (State, error) {
	return m.apply(ctx, "remove", func(ids []string) ([]string, bool) {
		return m.remove(ids, id)
	})
}

// Reorder replaces the order with newOrder, which must hold exactly the
// currently selected ids.
func (m *Manager) Reorder(ctx context.Context, newOrder []string) (State, error) {
	var permErr error
	state, err := m.apply(ctx, "reorder", func(ids []string) ([]string, bool) {
		if !isPermutation(ids, newOrder) {
			permErr = ErrNotPermutation
			return ids, false
		}
		if slices.Equal(ids, newOrder) {
			return ids, false
		}
		return slices.Clone(newOrder), true
	})
	if permErr != nil {
		return state, fmt.Errorf("reorder: %w", permErr)
	}
	return state, err
}

// Move shifts id by delta positions, clamped to the ends of the selection.
func (m *Manager) Move(ctx context.Context, id string, delta int) (State, error) {
	current := m.Current()
	from := current.Index(id)
	if from < 0 || delta == 0 {
		return current, nil
	}
	to := min(max(from+delta, 0), current.Len()-1)
	if to == from {
		return current, nil
	}
	order := slices.Delete(slices.Clone(current.IDs), from, from+1)
	order = slices.Insert(order, to, id)
	return m.Reorder(ctx, order)
}

// Reset replaces the selection with the default set.
func (m *Manager) Reset(ctx context.Context) (State, error) {
	return m.apply(ctx, "reset", func([]string) ([]string, bool) {
		return slices.Clone(m.defaults), true
	})
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.subsMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subs, id)
		m.subsMu.Unlock()
	}
}

func (m *Manager) apply(ctx context.Context, op string, fn func([]string) ([]string, bool)) (State, error) {
	m.mu.Lock()
	next, changed := fn(slices.Clone(m.state.IDs))
	if !changed {
		snap := m.state.Clone()
		m.mu.Unlock()
		return snap, nil
	}
	m.state = State{IDs: next, Bounds: m.bounds}
	saveErr := m.storage.SaveSelection(ctx, slices.Clone(next))
	snap := m.state.Clone()
	m.mu.Unlock()

	if saveErr != nil {
		m.log.Error("persist selection failed",
			zap.String("op", op), zap.Strings("ids", next), zap.Error(saveErr))
		saveErr = fmt.Errorf("persist selection: %w", saveErr)
	} else {
		m.log.Debug("selection updated", zap.String("op", op), zap.Strings("ids", next))
	}
	m.notify(snap)
	return snap, saveErr
}

func (m *Manager) add(ids []string, id string) ([]string, bool) {
	if slices.Contains(ids, id) || len(ids) >= m.bounds.Max {
		return ids, false
	}
	return append(ids, id), true
}

func (m *Manager) remove(ids []string, id string) ([]string, bool) {
	i := slices.Index(ids, id)
	if i < 0 || len(ids) <= m.bounds.Min {
		return ids, false
	}
	return slices.Delete(ids, i, i+1), true
}

func (m *Manager) notify(s State) {
	m.subsMu.Lock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subsMu.Unlock()

	for _, fn := range fns {
		fn(s.Clone())
	}
}

func (m *Manager) defaultState() State {
	return State{IDs: slices.Clone(m.defaults), Bounds: m.bounds}
}

func (m *Manager) validate(ids []string) error {
	if !m.bounds.Contains(len(ids)) {
		return fmt.Errorf("%d apps selected, want %d..%d", len(ids), m.bounds.Min, m.bounds.Max)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !m.catalog.Has(id) {
			return fmt.Errorf("%q: %w", id, ErrUnknownApp)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate app %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func isPermutation(current, order []string) bool {
	if len(current) != len(order) {
		return false
	}
	counts := make(map[string]int, len(current))
	for _, id := range current {
		counts[id]++
	}
	for _, id := range order {
		if counts[id] == 0 {
			return false
		}
		counts[id]--
	}
	return true
}
