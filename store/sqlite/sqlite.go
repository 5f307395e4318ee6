/*
Package sqlite provides the SQLite-backed implementation of the
whole-state store.

PURPOSE:
  The application persists its entire state {referrers, checks,
  futureDays} as a single JSON blob under a fixed key, matching the
  single-device, single-session ownership model. SQLite is the durable
  keyed blob: one table, one row, atomic whole-state replacement.

LOAD CONTRACT:
  - No row (first run): return DefaultState(), no error.
  - Unreadable or malformed payload: return DefaultState(), no error.
    Recovery is local and silent; nothing blocks the session.
  - Any loaded state is repaired with EnsureDefaults() so the sentinel
    referrer is always present.

WAL MODE:
  The database is opened with WAL for better crash recovery. A mutex
  serializes writes; there is only one active session by design.

USAGE:
  store, err := sqlite.New("./data/checks.db")
  if err != nil { log.Fatal(err) }
  defer store.Close()
  b, err := book.Open(ctx, store, nil)

SEE ALSO:
  - check/store.go: interface definition
  - check/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/daftar/check-engine/check"
)

// stateKey is the fixed storage key for the whole-state blob.
const stateKey = "checkbook"

// Store implements check.StateStore on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS app_state (
		key        TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored state, falling back to defaults on first run
// or unreadable data.
func (s *Store) Load(ctx context.Context) (check.State, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM app_state WHERE key = ?`, stateKey,
	).Scan(&payload)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return check.DefaultState(), nil
	case err != nil:
		return check.State{}, fmt.Errorf("failed to load state: %w", err)
	}

	var state check.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		// Malformed stored state: recover locally with defaults.
		return check.DefaultState(), nil
	}
	state.EnsureDefaults()
	return state, nil
}

// Save atomically replaces the whole-state blob.
func (s *Store) Save(ctx context.Context, state check.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		stateKey, string(payload), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
