package db

import (
	"context"

	"github.com/rpatil524/mlrun/pkg/domain"
)

// Query filters run listings. Zero values match everything.
type Query struct {
	Project string
	Name    string
	State   domain.RunState
}

type Interface interface {
	// Find lists runs matching q, newest started first
	// (ties broken by uid, so the ordering is stable).
	//
	// bounds, when non-nil, slices the listing by offset/limit.
	Find(ctx context.Context, q Query, bounds *domain.Bounds) ([]domain.RunSummary, error)
}
