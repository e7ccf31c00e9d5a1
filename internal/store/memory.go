// internal/store/memory.go
//
// In-memory implementation of Store.
// Used when no database path is configured, and in tests.
//
// Characteristics:
//   - Stores copies of *Run keyed by ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"sync"
	"time"
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

// Save adds or replaces the run.
func (m *memory) Save(ctx context.Context, r *Run) error {
	cp := *r
	cp.Guesses = append([]string(nil), r.Guesses...)
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[cp.ID] = &cp
	return nil
}

// Get looks up a run by ID.
func (m *memory) Get(ctx context.Context, id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.runs[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, ErrNotFound
}

// List returns runs newest first.
func (m *memory) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	m.mu.RLock()
	out := make([]*Run, 0, len(m.runs))
	for _, r := range m.runs {
		cp := *r
		out = append(out, &cp)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats counts runs and averages guesses over wins.
func (m *memory) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var s Stats
	total := 0
	for _, r := range m.runs {
		s.Runs++
		if r.Won() {
			s.Won++
			total += len(r.Guesses)
		}
	}
	if s.Won > 0 {
		s.AvgGuesses = float64(total) / float64(s.Won)
	}
	return s, nil
}
