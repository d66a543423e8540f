package project

import (
	"context"

	"github.com/rpatil524/mlrun/pkg/domain"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/project/db"
)

// ListMethod is the pagination registry name of the project listing.
const ListMethod = "list_projects"

type Interface interface {
	Database() db.Interface
}

type Project struct {
	db db.Interface
}

func New(dbp db.Interface) Interface {
	return &Project{db: dbp}
}

func (p *Project) Database() db.Interface {
	return p.db
}

// PaginatedFind exposes store's Find as a paginable method.
func PaginatedFind(store db.Interface) pagination.Method {
	return pagination.Method{
		Name: ListMethod,
		Params: pagination.Schema{
			{Name: "owner", Kind: pagination.KindString},
			{Name: "state", Kind: pagination.KindString},
			{Name: "label", Kind: pagination.KindStrings},
		},
		Fetch: func(ctx context.Context, kwargs map[string]any, bounds *domain.Bounds) ([]any, error) {
			q := db.Query{}
			if v, ok := kwargs["owner"].(string); ok {
				q.Owner = v
			}
			if v, ok := kwargs["state"].(string); ok {
				q.State = domain.ProjectState(v)
			}
			if v, ok := kwargs["label"].([]string); ok {
				q.Labels = v
			}

			found, err := store.Find(ctx, q, bounds)
			if err != nil {
				return nil, err
			}
			items := make([]any, len(found))
			for nth, p := range found {
				items[nth] = p
			}
			return items, nil
		},
	}
}
