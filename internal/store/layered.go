package store

import (
	"time"

	"github.com/nfarrow/recoup/internal/model"
)

// LayeredStore fronts the disk store with a memory layer. Batch runs
// merge many deltas into the same record; the memory layer keeps those
// round trips off the filesystem.
type LayeredStore struct {
	memory Store
	disk   Store
}

// NewLayeredStore creates a new layered store
func NewLayeredStore(memoryTTL time.Duration, diskDir string) *LayeredStore {
	return &LayeredStore{
		memory: NewMemoryStore(memoryTTL, 10*time.Minute),
		disk:   NewDiskStore(diskDir),
	}
}

// Get retrieves a record (checks memory first, then disk)
func (s *LayeredStore) Get(id string) (*model.TrackedClaimRecord, bool, error) {
	if record, found, err := s.memory.Get(id); err == nil && found {
		return record, true, nil
	}

	record, found, err := s.disk.Get(id)
	if err != nil || !found {
		return nil, false, err
	}

	// Promote to the memory layer
	_ = s.memory.Put(record)
	return record, true, nil
}

// Put stores a record in both layers
func (s *LayeredStore) Put(record *model.TrackedClaimRecord) error {
	if err := s.memory.Put(record); err != nil {
		return err
	}
	return s.disk.Put(record)
}

// Delete removes a record from both layers
func (s *LayeredStore) Delete(id string) error {
	_ = s.memory.Delete(id)
	return s.disk.Delete(id)
}

// List returns the IDs on disk; disk is the source of truth
func (s *LayeredStore) List() ([]string, error) {
	return s.disk.List()
}
