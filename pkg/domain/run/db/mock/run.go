// mock implementation of the run store for testing.
package mock

import (
	"context"
	"errors"

	"github.com/rpatil524/mlrun/pkg/domain"
	krundb "github.com/rpatil524/mlrun/pkg/domain/run/db"
)

type MockRunInterface struct {
	Impl struct {
		Find func(ctx context.Context, q krundb.Query, bounds *domain.Bounds) ([]domain.RunSummary, error)
	}
}

func NewMockRunInterface() *MockRunInterface {
	return &MockRunInterface{}
}

func (m *MockRunInterface) Find(
	ctx context.Context, q krundb.Query, bounds *domain.Bounds,
) ([]domain.RunSummary, error) {
	if m.Impl.Find == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Find(ctx, q, bounds)
}
