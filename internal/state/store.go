package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/launchpad/internal/catalog"
	"github.com/five82/launchpad/internal/selection"
)

// NoticeTTL is how long a launch notice stays visible.
const NoticeTTL = 2500 * time.Millisecond

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Selection   selection.State
	Apps        []catalog.AppDescriptor // selected apps, in display order
	Loading     bool                    // true until the stored selection is read
	Onboarded   bool
	Busy        bool // a mutation or launch is in flight
	Notice      string
	NoticeUntil time.Time
	LastError   error
	LastUpdated time.Time
}

// ActiveNotice returns the notice if it has not expired at now.
func (s Snapshot) ActiveNotice(now time.Time) string {
	if s.Notice == "" || !now.Before(s.NoticeUntil) {
		return ""
	}
	return s.Notice
}

// Store coordinates concurrent updates to the snapshot and tells
// subscribers when it changes.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	clock    clockwork.Clock
	subs     map[int]chan struct{}
	nextSub  int
}

// NewStore returns a store in the loading state.
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:    clock,
		snapshot: Snapshot{Loading: true},
	}
}

// SetSelection records a new selection and clears the loading flag.
func (s *Store) SetSelection(sel selection.State, apps []catalog.AppDescriptor) {
	s.update(func(snap *Snapshot) {
		snap.Selection = sel.Clone()
		snap.Apps = cloneApps(apps)
		snap.Loading = false
	})
}

// SetOnboarded records whether first-run selection has been completed.
func (s *Store) SetOnboarded(done bool) {
	s.update(func(snap *Snapshot) { snap.Onboarded = done })
}

// SetBusy marks whether user controls should be disabled.
func (s *Store) SetBusy(busy bool) {
	s.update(func(snap *Snapshot) { snap.Busy = busy })
}

// ShowNotice displays msg for NoticeTTL. An empty msg clears the notice.
func (s *Store) ShowNotice(msg string) {
	s.update(func(snap *Snapshot) {
		snap.Notice = msg
		if msg == "" {
			snap.NoticeUntil = time.Time{}
			return
		}
		snap.NoticeUntil = s.now().Add(NoticeTTL)
	})
}

// RecordError keeps the previous data but records err for visibility.
// A nil err clears the last error.
func (s *Store) RecordError(err error) {
	s.update(func(snap *Snapshot) { snap.LastError = err })
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Selection = s.snapshot.Selection.Clone()
	snap.Apps = cloneApps(s.snapshot.Apps)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Now reports the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Subscribe returns a channel that receives a value after each change.
// Changes are coalesced: a slow reader sees one pending signal, then calls
// Snapshot for the latest state.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan struct{})
	}
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.snapshot)
	s.snapshot.LastUpdated = s.now()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}

func cloneApps(apps []catalog.AppDescriptor) []catalog.AppDescriptor {
	if len(apps) == 0 {
		return nil
	}
	dup := make([]catalog.AppDescriptor, len(apps))
	copy(dup, apps)
	return dup
}
