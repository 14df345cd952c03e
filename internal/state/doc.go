// Package state holds the snapshot the launcher UI renders from.
//
// The Store sits between the selection manager, which changes the selection
// from key handlers and the initial load, and the Bubble Tea model, which
// only ever reads copies:
//
//	selection.Manager ──Subscribe──► store.SetSelection ──► notify
//	                                                         │
//	ui.Model ◄── snapshotMsg ◄── store.Snapshot() ◄──────────┘
//
// Besides the selection it tracks the loading flag (set until the stored
// selection has been read), whether onboarding is done, whether an operation
// is in flight, and the last launch notice with its expiry.
//
// Snapshots are copies. Selection ids, the app slice and the last error are
// cloned so the UI can keep one across renders without racing a writer.
//
// Subscribe hands out a one-slot channel per subscriber. Signals are
// coalesced, so a reader that falls behind sees a single pending change and
// reads the newest snapshot.
//
// A zero Store is usable; it starts with Loading false and the real clock.
// NewStore starts in the loading state and accepts a clockwork clock for
// tests.
package state
