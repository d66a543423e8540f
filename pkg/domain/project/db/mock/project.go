// mock implementation of the project store for testing.
package mock

import (
	"context"
	"errors"

	"github.com/rpatil524/mlrun/pkg/domain"
	kpjdb "github.com/rpatil524/mlrun/pkg/domain/project/db"
)

type MockProjectInterface struct {
	Impl struct {
		Find func(ctx context.Context, q kpjdb.Query, bounds *domain.Bounds) ([]domain.ProjectSummary, error)
	}
}

func NewMockProjectInterface() *MockProjectInterface {
	return &MockProjectInterface{}
}

func (m *MockProjectInterface) Find(
	ctx context.Context, q kpjdb.Query, bounds *domain.Bounds,
) ([]domain.ProjectSummary, error) {
	if m.Impl.Find == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Find(ctx, q, bounds)
}
