package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rohithprakash15/dripadvisor/internal/advisor"
)

// Snapshot represents the latest wardrobe mirror available to the UI. The
// mirror is optimistic: it can drift from server truth between refreshes and
// is reconciled on the next full fetch.
type Snapshot struct {
	Items               []advisor.ClothingItem
	Loaded              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
}

// IsOffline returns true when the backend has been unreachable for multiple
// refreshes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored wardrobe. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(items []advisor.ClothingItem, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Items = cloneItems(items)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Reset drops the mirror entirely. Used when the session ends so the next
// user never sees the previous user's wardrobe.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []advisor.ClothingItem) []advisor.ClothingItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]advisor.ClothingItem, len(items))
	copy(dup, items)
	return dup
}
