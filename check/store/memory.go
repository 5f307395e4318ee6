// Package store provides StateStore implementations.
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/daftar/check-engine/check"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps the serialized state blob in memory. It round-trips through
// JSON like the sqlite store so tests exercise the same load fallback path.
type Memory struct {
	mu      sync.RWMutex
	payload []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

// Seed installs a raw payload, bypassing Save. Tests use this to simulate
// malformed stored data.
func (m *Memory) Seed(payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
}

func (m *Memory) Load(_ context.Context) (check.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.payload) == 0 {
		return check.DefaultState(), nil
	}
	var s check.State
	if err := json.Unmarshal(m.payload, &s); err != nil {
		// Malformed state is recovered locally, never surfaced.
		return check.DefaultState(), nil
	}
	s.EnsureDefaults()
	return s, nil
}

func (m *Memory) Save(_ context.Context, s check.State) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	return nil
}
