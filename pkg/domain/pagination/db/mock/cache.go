// mock implementation of the pagination cache store for testing.
package mock

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rpatil524/mlrun/pkg/domain"
)

type MockCacheInterface struct {
	Impl struct {
		Create      func(ctx context.Context, user string, method string, page int, pageSize int, kwargs json.RawMessage) (string, error)
		Get         func(ctx context.Context, token string) (*domain.PaginationRecord, error)
		Update      func(ctx context.Context, token string, page int, pageSize int, user string) error
		DeleteStale func(ctx context.Context, ttl time.Duration) (int, error)
		TrimToSize  func(ctx context.Context, max int) (int, error)
		List        func(ctx context.Context) ([]domain.PaginationRecord, error)
	}
}

func NewMockCacheInterface() *MockCacheInterface {
	return &MockCacheInterface{}
}

func (m *MockCacheInterface) Create(ctx context.Context, user string, method string, page int, pageSize int, kwargs json.RawMessage) (string, error) {
	if m.Impl.Create == nil {
		return "", errors.New("[MOCK] not implemented")
	}
	return m.Impl.Create(ctx, user, method, page, pageSize, kwargs)
}

func (m *MockCacheInterface) Get(ctx context.Context, token string) (*domain.PaginationRecord, error) {
	if m.Impl.Get == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.Get(ctx, token)
}

func (m *MockCacheInterface) Update(ctx context.Context, token string, page int, pageSize int, user string) error {
	if m.Impl.Update == nil {
		return errors.New("[MOCK] not implemented")
	}
	return m.Impl.Update(ctx, token, page, pageSize, user)
}

func (m *MockCacheInterface) DeleteStale(ctx context.Context, ttl time.Duration) (int, error) {
	if m.Impl.DeleteStale == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.DeleteStale(ctx, ttl)
}

func (m *MockCacheInterface) TrimToSize(ctx context.Context, max int) (int, error) {
	if m.Impl.TrimToSize == nil {
		return 0, errors.New("[MOCK] not implemented")
	}
	return m.Impl.TrimToSize(ctx, max)
}

func (m *MockCacheInterface) List(ctx context.Context) ([]domain.PaginationRecord, error) {
	if m.Impl.List == nil {
		return nil, errors.New("[MOCK] not implemented")
	}
	return m.Impl.List(ctx)
}
