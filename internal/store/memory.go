package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nfarrow/recoup/internal/model"
)

// MemoryStore keeps records in process memory with a TTL
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore creates a new memory store
func NewMemoryStore(defaultTTL, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a record from memory
func (s *MemoryStore) Get(id string) (*model.TrackedClaimRecord, bool, error) {
	if val, found := s.cache.Get(id); found {
		return val.(*model.TrackedClaimRecord), true, nil
	}
	return nil, false, nil
}

// Put stores a record with the default TTL
func (s *MemoryStore) Put(record *model.TrackedClaimRecord) error {
	s.cache.Set(record.ID, record, gocache.DefaultExpiration)
	return nil
}

// Delete removes a record from memory
func (s *MemoryStore) Delete(id string) error {
	s.cache.Delete(id)
	return nil
}

// List returns the IDs of all live records
func (s *MemoryStore) List() ([]string, error) {
	items := s.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids, nil
}
