// Package selection owns the user's chosen launcher apps.
//
// A Manager keeps an ordered list of catalog ids whose length always stays in
// Bounds (2..6 by default). Mutations that would breach the bounds are
// silently ignored: the UI disables those controls, and the Manager enforces
// the rule again so no caller can produce an invalid state.
//
// Every mutation writes through to a Storage before returning. The write
// happens under the Manager's lock, so writes reach storage in the order they
// were applied and a later Load never observes an older value. When a write
// fails the in-memory state keeps the mutation and the error is returned; the
// next Load falls back to whatever storage holds.
//
// Observers register with Subscribe and receive a copy of each new State.
package selection
