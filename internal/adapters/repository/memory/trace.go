// Package memory provides in-memory storage adapters.
package memory

import (
	"sync"
)

// TraceStore is a bounded, thread-safe store for serialized run traces.
// When the capacity is exceeded the oldest record is evicted, so the
// store behaves as a ring of the most recent runs.
type TraceStore struct {
	mu       sync.RWMutex
	entries  map[string][]byte
	order    []string
	capacity int
}

// NewTraceStore creates a store retaining at most capacity records.
// A non-positive capacity retains a single record.
func NewTraceStore(capacity int) *TraceStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &TraceStore{
		entries:  make(map[string][]byte, capacity),
		capacity: capacity,
	}
}

// Put stores a serialized trace under its run ID, evicting the oldest
// record when full. Re-putting an existing ID refreshes its position.
func (s *TraceStore) Put(runID string, blob []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[runID]; exists {
		s.remove(runID)
	}
	for len(s.order) >= s.capacity {
		s.remove(s.order[0])
	}
	s.entries[runID] = blob
	s.order = append(s.order, runID)
}

// Get returns the serialized trace for a run ID.
func (s *TraceStore) Get(runID string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.entries[runID]
	return blob, ok
}

// List returns the stored run IDs, oldest first.
func (s *TraceStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.order...)
}

// Len returns the number of stored traces.
func (s *TraceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// remove drops an entry; the caller holds the write lock.
func (s *TraceStore) remove(runID string) {
	delete(s.entries, runID)
	for i, id := range s.order {
		if id == runID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
