package state

import (
	"sync"
	"time"

	"github.com/five82/checkoff/internal/api"
)

// Snapshot is a point-in-time copy of the local collection.
type Snapshot struct {
	Items       []api.Todo
	Loading     bool
	Err         string // last error message; empty when none
	LastUpdated time.Time
}

// IsEmpty reports the empty-state condition: nothing to show and nothing loading.
func (s Snapshot) IsEmpty() bool {
	return !s.Loading && len(s.Items) == 0
}

// Find returns the todo with the given id.
func (s Snapshot) Find(id string) (api.Todo, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return api.Todo{}, false
}

// Counts returns the number of completed and open todos.
func (s Snapshot) Counts() (done, open int) {
	for _, item := range s.Items {
		if item.Completed {
			done++
		} else {
			open++
		}
	}
	return done, open
}

// Store holds the authoritative local copy of the collection. Items are only
// ever replaced wholesale.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Replace swaps in a fresh collection and clears any error.
func (s *Store) Replace(items []api.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Items = cloneItems(items)
	s.snapshot.Err = ""
	s.snapshot.LastUpdated = time.Now()
}

// SetLoading flags an in-flight refresh.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Loading = loading
}

// SetError records msg, overwriting any previous message. An empty msg clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Err = msg
}

// ClearError drops the current error message.
func (s *Store) ClearError() {
	s.SetError("")
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	return snap
}

func cloneItems(items []api.Todo) []api.Todo {
	if items == nil {
		return nil
	}
	dup := make([]api.Todo, len(items))
	copy(dup, items)
	return dup
}
