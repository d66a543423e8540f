package cachejanitor

import (
	"context"
	"log"
	"time"

	"github.com/rpatil524/mlrun/cmd/loops/recurring"
	kpgndb "github.com/rpatil524/mlrun/pkg/domain/pagination/db"
)

// Cursor carries eviction totals over janitor cycles.
type Cursor struct {
	// count of records evicted because they outlived the TTL.
	Expired int

	// count of records evicted to keep the cache under its max size.
	Trimmed int
}

// initial value for task
func Seed() Cursor {
	return Cursor{}
}

// Task sweeps the pagination cache: records untouched for ttl are
// expired, then the least recently used ones are trimmed until at most
// maxSize records remain.
//
// Return:
//
// - task: evict stale and excess pagination cache records
func Task(
	logger *log.Logger,
	cache kpgndb.Interface,
	ttl time.Duration,
	maxSize int,
) recurring.Task[Cursor] {
	return func(ctx context.Context, cursor Cursor) (Cursor, bool, error) {
		expired, err := cache.DeleteStale(ctx, ttl)
		cursor.Expired += expired
		if err != nil {
			return cursor, false, err
		}

		trimmed, err := cache.TrimToSize(ctx, maxSize)
		cursor.Trimmed += trimmed
		if err != nil {
			return cursor, false, err
		}

		if 0 < expired+trimmed {
			remaining, err := cache.List(ctx)
			if err != nil {
				return cursor, true, err
			}
			logger.Printf(
				"evicted %d expired + %d excess records. %d records remain",
				expired, trimmed, len(remaining),
			)
		}

		return cursor, 0 < expired+trimmed, nil
	}
}
