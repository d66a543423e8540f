package db

import (
	"context"

	"github.com/rpatil524/mlrun/pkg/domain"
)

// Query filters project listings. Zero values match everything.
type Query struct {
	Owner  string
	State  domain.ProjectState
	Labels []string
}

type Interface interface {
	// Find lists projects matching q, ordered by name.
	//
	// bounds, when non-nil, slices the listing by offset/limit.
	// The ordering is stable, so adjacent bounds yield adjacent items.
	Find(ctx context.Context, q Query, bounds *domain.Bounds) ([]domain.ProjectSummary, error)
}
