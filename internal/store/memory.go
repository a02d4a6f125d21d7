// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used when no DATABASE_PATH is configured, and in tests.
//
// Characteristics:
//   - Stores *Run records keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu   sync.RWMutex    // guards runs
	runs map[string]*Run // keyed by Run.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{runs: make(map[string]*Run)}
}

// Save adds or replaces the run. A copy is stored.
func (m *memory) Save(ctx context.Context, r *Run) error {
	if err := r.validate(); err != nil {
		return err
	}
	cp := r.clone()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[r.ID] = cp
	return nil
}

// Get looks up a run by ID.
func (m *memory) Get(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		return r.clone(), nil
	}
	return nil, ErrNotFound
}

// List returns up to limit runs, newest first.
func (m *memory) List(ctx context.Context, limit int) ([]*Run, error) {
	m.mu.RLock()
	out := make([]*Run, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r.clone())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Close() error { return nil }
