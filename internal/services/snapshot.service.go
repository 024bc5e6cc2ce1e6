package services

import (
	"sync"

	"jelly/internal/models"
)

// SnapshotStore remembers the last per-interface counter snapshot so the next
// sample can be turned into a rate. The zero value is not usable; call NewSnapshotStore.
type SnapshotStore struct {
	mu       sync.Mutex
	previous *models.Snapshot
}

// NewSnapshotStore returns an empty store
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Previous returns a copy of the stored snapshot, or nil before the first Store
func (s *SnapshotStore) Previous() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyPrevious()
}

// Store replaces the stored snapshot
func (s *SnapshotStore) Store(snapshot models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot.Clone()
	s.previous = &snap
}

// Cycle runs one read-compute-write step while holding the store lock. fn receives
// the previous snapshot (nil if none) and returns the snapshot to store in its place.
// Concurrent cycles are totally ordered: each one sees exactly what the one before it stored.
func (s *SnapshotStore) Cycle(fn func(previous *models.Snapshot) models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.copyPrevious()).Clone()
	s.previous = &next
}

func (s *SnapshotStore) copyPrevious() *models.Snapshot {
	if s.previous == nil {
		return nil
	}
	snap := s.previous.Clone()
	return &snap
}
