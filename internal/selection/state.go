package selection

import "slices"

// Default selection bounds.
const (
	MinSelected = 2
	MaxSelected = 6
)

// Bounds is the inclusive size range for a selection.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns MinSelected..MaxSelected.
func DefaultBounds() Bounds {
	return Bounds{Min: MinSelected, Max: MaxSelected}
}

// Contains reports whether n is within the bounds.
func (b Bounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// State is an ordered selection of app ids. Order is display and launch order.
type State struct {
	IDs    []string
	Bounds Bounds
}

// Len returns the number of selected apps.
func (s State) Len() int { return len(s.IDs) }

// Contains reports whether id is selected.
func (s State) Contains(id string) bool {
	return slices.Contains(s.IDs, id)
}

// Index returns the position of id, or -1.
func (s State) Index(id string) int {
	return slices.Index(s.IDs, id)
}

// AtMin reports whether removing another app would breach the floor.
func (s State) AtMin() bool { return len(s.IDs) <= s.Bounds.Min }

// AtMax reports whether adding another app would breach the ceiling.
func (s State) AtMax() bool { return len(s.IDs) >= s.Bounds.Max }

// Equal compares ids and order.
func (s State) Equal(other State) bool {
	return slices.Equal(s.IDs, other.IDs)
}

// Clone returns a State that shares no memory with s.
func (s State) Clone() State {
	return State{IDs: slices.Clone(s.IDs), Bounds: s.Bounds}
}
