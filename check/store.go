/*
store.go - Whole-state persistence interface

PURPOSE:
  The collection is owned in memory; stores only serialize and
  deserialize it wholesale, mirroring a single keyed blob. There is no
  per-record persistence and no partial write.

LOAD CONTRACT:
  Load must tolerate a first run (nothing stored) and malformed stored
  data by returning DefaultState() - never an error a session would have
  to surface. Implementations call EnsureDefaults() so the sentinel
  referrer is always present after load.

IMPLEMENTATIONS:
  - store/sqlite: production single-row JSON blob
  - check/store:  in-memory store for tests
*/
package check

import "context"

// StateStore persists the entire application state as one unit.
type StateStore interface {
	// Load returns the stored state, or DefaultState() on first run or
	// unreadable data. The returned state always satisfies EnsureDefaults.
	Load(ctx context.Context) (State, error)

	// Save atomically replaces the stored state.
	Save(ctx context.Context, s State) error
}
