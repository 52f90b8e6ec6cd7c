// Package store persists claim records between invocations. A claim
// accretes evidence across many documents and chat sessions, so the
// record has to outlive the process; the memory layer just keeps the
// active claim hot within one batch run.
package store

import (
	"strings"

	"github.com/nfarrow/recoup/internal/model"
)

// Store defines the interface for claim record persistence
type Store interface {
	// Get retrieves a record by claim ID
	Get(id string) (*model.TrackedClaimRecord, bool, error)

	// Put stores a record, replacing any previous version
	Put(record *model.TrackedClaimRecord) error

	// Delete removes a record
	Delete(id string) error

	// List returns the IDs of all stored records
	List() ([]string, error)
}

// safeID rejects IDs that could escape the store directory. Records are
// keyed by UUID, but IDs also arrive from the command line.
func safeID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, "/\\..")
}
