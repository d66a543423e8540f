package mlrun

import (
	"context"
	"log"

	kca "github.com/rpatil524/mlrun/pkg/configs/api"
	"github.com/rpatil524/mlrun/pkg/domain/mlrun/db/postgres"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	kpgndb "github.com/rpatil524/mlrun/pkg/domain/pagination/db"
	"github.com/rpatil524/mlrun/pkg/domain/project"
	"github.com/rpatil524/mlrun/pkg/domain/run"
)

// Mlrun is the root object of the control plane domain.
//
// The pagination registry is built here, once per process:
// every paginable listing is registered before the object is handed out,
// and the registry is immutable afterwards.
type Mlrun interface {
	Project() project.Interface
	Run() run.Interface

	PaginationCache() kpgndb.Interface
	Paginator() *pagination.Paginator

	Close()
}

type mlrun struct {
	stores *postgres.Stores

	project project.Interface
	run     run.Interface

	paginator *pagination.Paginator
}

func New(ctx context.Context, config *kca.Config, logger *log.Logger) (Mlrun, error) {
	stores, err := postgres.New(ctx, config.DBURI)
	if err != nil {
		return nil, err
	}

	registry := pagination.NewRegistry()
	registry.Register(project.PaginatedFind(stores.Projects()))
	registry.Register(run.PaginatedFind(stores.Runs()))

	paginator := pagination.New(
		registry,
		stores.PaginationCache(),
		pagination.Config{
			DefaultPageSize: config.Pagination.DefaultPageSize,
			PageLimit:       config.Pagination.PageLimit,
			PageSizeLimit:   config.Pagination.PageSizeLimit,
		},
		logger,
	)

	return &mlrun{
		stores:    stores,
		project:   project.New(stores.Projects()),
		run:       run.New(stores.Runs()),
		paginator: paginator,
	}, nil
}

func (m *mlrun) Project() project.Interface {
	return m.project
}

func (m *mlrun) Run() run.Interface {
	return m.run
}

func (m *mlrun) PaginationCache() kpgndb.Interface {
	return m.stores.PaginationCache()
}

func (m *mlrun) Paginator() *pagination.Paginator {
	return m.paginator
}

func (m *mlrun) Close() {
	m.stores.Close()
}
