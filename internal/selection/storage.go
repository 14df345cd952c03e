package selection

import (
	"context"
	"slices"
	"sync"
)

// Storage persists the ordered list of selected ids.
//
// LoadSelection returns (nil, nil) when nothing has been stored. A completed
// SaveSelection must be visible to the next LoadSelection.
type Storage interface {
	LoadSelection(ctx context.Context) ([]string, error)
	SaveSelection(ctx context.Context, ids []string) error
}

// MemoryStorage keeps the selection in process memory.
type MemoryStorage struct {
	mu    sync.Mutex
	ids   []string
	saved bool
}

// NewMemoryStorage returns an empty storage. Pass ids to pre-seed it.
func NewMemoryStorage(ids ...string) *MemoryStorage {
	s := &MemoryStorage{}
	if len(ids) > 0 {
		s.ids = slices.Clone(ids)
		s.saved = true
	}
	return s
}

// LoadSelection implements Storage.
func (s *MemoryStorage) LoadSelection(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, nil
	}
	return slices.Clone(s.ids), nil
}

// SaveSelection implements Storage.
func (s *MemoryStorage) SaveSelection(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = slices.Clone(ids)
	s.saved = true
	return nil
}
