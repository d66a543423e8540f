package run

import (
	"context"

	"github.com/rpatil524/mlrun/pkg/domain"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/run/db"
)

// ListMethod is the pagination registry name of the run listing.
const ListMethod = "list_runs"

type Interface interface {
	Database() db.Interface
}

type Run struct {
	db db.Interface
}

func New(dbr db.Interface) Interface {
	return &Run{db: dbr}
}

func (r *Run) Database() db.Interface {
	return r.db
}

// PaginatedFind exposes store's Find as a paginable method.
func PaginatedFind(store db.Interface) pagination.Method {
	return pagination.Method{
		Name: ListMethod,
		Params: pagination.Schema{
			{Name: "project", Kind: pagination.KindString},
			{Name: "name", Kind: pagination.KindString},
			{Name: "state", Kind: pagination.KindString},
		},
		Fetch: func(ctx context.Context, kwargs map[string]any, bounds *domain.Bounds) ([]any, error) {
			q := db.Query{}
			if v, ok := kwargs["project"].(string); ok {
				q.Project = v
			}
			if v, ok := kwargs["name"].(string); ok {
				q.Name = v
			}
			if v, ok := kwargs["state"].(string); ok {
				q.State = domain.RunState(v)
			}

			found, err := store.Find(ctx, q, bounds)
			if err != nil {
				return nil, err
			}
			items := make([]any, len(found))
			for nth, r := range found {
				items[nth] = r
			}
			return items, nil
		},
	}
}
