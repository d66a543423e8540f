package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rpatil524/mlrun/pkg/domain"
)

// Interface is persistent storage for pagination cache records.
//
// Records are addressed by token, so contention between requests is
// per-token. The janitor's sweeps (DeleteStale, TrimToSize) run
// concurrently with record reads/writes; a Get racing a deletion
// resolves to "not found" for the loser, never a partial read.
type Interface interface {
	// Create persists a new record for (user, method, kwargs) starting
	// at page, and returns its fresh, unguessable token.
	//
	// user may be empty (anonymous caller).
	Create(ctx context.Context, user string, method string, page int, pageSize int, kwargs json.RawMessage) (string, error)

	// Get returns the record identified by token.
	//
	// Returned error unwraps to kerr.ErrMissing when no such record exists
	// (never was, or already evicted).
	Get(ctx context.Context, token string) (*domain.PaginationRecord, error)

	// Update advances the record in place and refreshes its
	// last-accessed time. Method and kwargs of a record never change.
	//
	// Returned error unwraps to kerr.ErrMissing when the record is gone.
	Update(ctx context.Context, token string, page int, pageSize int, user string) error

	// DeleteStale removes records unused for longer than ttl.
	// Deleting an already-absent record is not an error.
	// Returns the number of removed records.
	DeleteStale(ctx context.Context, ttl time.Duration) (int, error)

	// TrimToSize keeps the max most recently used records and removes
	// the rest, oldest first. Returns the number of removed records.
	TrimToSize(ctx context.Context, max int) (int, error)

	// List enumerates all records, least recently used first.
	List(ctx context.Context) ([]domain.PaginationRecord, error)
}
