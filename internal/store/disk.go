package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfarrow/recoup/internal/model"
)

// DiskStore persists records as JSON files, one per claim. Disk records
// do not expire; a claim can sit idle for months before the next letter.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a new disk store
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Get retrieves a record from disk
func (s *DiskStore) Get(id string) (*model.TrackedClaimRecord, bool, error) {
	if !safeID(id) {
		return nil, false, fmt.Errorf("invalid claim ID: %q", id)
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read record: %w", err)
	}

	var record model.TrackedClaimRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return &record, true, nil
}

// Put stores a record on disk
func (s *DiskStore) Put(record *model.TrackedClaimRecord) error {
	if !safeID(record.ID) {
		return fmt.Errorf("invalid claim ID: %q", record.ID)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	if err := os.WriteFile(s.path(record.ID), data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Delete removes a record from disk
func (s *DiskStore) Delete(id string) error {
	if !safeID(id) {
		return fmt.Errorf("invalid claim ID: %q", id)
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns the IDs of all records on disk
func (s *DiskStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// path generates the file path for a claim ID
func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}
