package postgres

import (
	"context"

	kpool "github.com/rpatil524/mlrun/pkg/conn/db/postgres/pool"
	kpgndb "github.com/rpatil524/mlrun/pkg/domain/pagination/db"
	kpgpagination "github.com/rpatil524/mlrun/pkg/domain/pagination/db/postgres"
	kpjdb "github.com/rpatil524/mlrun/pkg/domain/project/db"
	kpgproject "github.com/rpatil524/mlrun/pkg/domain/project/db/postgres"
	krundb "github.com/rpatil524/mlrun/pkg/domain/run/db"
	kpgrun "github.com/rpatil524/mlrun/pkg/domain/run/db/postgres"
)

// Stores bundles the postgres-backed store of each domain entity
// over a single connection pool.
type Stores struct {
	pool kpool.Pool

	projects        kpjdb.Interface
	runs            krundb.Interface
	paginationCache kpgndb.Interface
}

func New(ctx context.Context, dbURI string) (*Stores, error) {
	pool, err := kpool.Connect(ctx, dbURI)
	if err != nil {
		return nil, err
	}
	if err := kpgpagination.Ensure(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Stores{
		pool:            pool,
		projects:        kpgproject.New(pool),
		runs:            kpgrun.New(pool),
		paginationCache: kpgpagination.New(pool),
	}, nil
}

func (s *Stores) Projects() kpjdb.Interface {
	return s.projects
}

func (s *Stores) Runs() krundb.Interface {
	return s.runs
}

func (s *Stores) PaginationCache() kpgndb.Interface {
	return s.paginationCache
}

func (s *Stores) Close() {
	s.pool.Close()
}
