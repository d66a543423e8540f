package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/pagination/db/mock"
	"github.com/rpatil524/mlrun/pkg/utils/try"
)

var silent = log.New(io.Discard, "", 0)

func bearerFor(t *testing.T, user string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": user})
	return try.To(token.SignedString([]byte("test-secret"))).OrFatal(t)
}

// in-memory pagination cache backed by the mock.
func inMemoryCache() *mock.MockCacheInterface {
	records := map[string]domain.PaginationRecord{}
	seq := 0
	m := mock.NewMockCacheInterface()
	m.Impl.Create = func(_ context.Context, user string, method string, page int, pageSize int, kwargs json.RawMessage) (string, error) {
		seq += 1
		token := fmt.Sprintf("token-%d", seq)
		records[token] = domain.PaginationRecord{
			Token: token, User: user, Method: method,
			CurrentPage: page, PageSize: pageSize, Kwargs: kwargs,
			LastAccessed: time.Now(),
		}
		return token, nil
	}
	m.Impl.Get = func(_ context.Context, token string) (*domain.PaginationRecord, error) {
		r, ok := records[token]
		if !ok {
			return nil, kerr.Missing{Table: "pagination_cache", Identity: token}
		}
		return &r, nil
	}
	m.Impl.Update = func(_ context.Context, token string, page int, pageSize int, user string) error {
		r, ok := records[token]
		if !ok {
			return kerr.Missing{Table: "pagination_cache", Identity: token}
		}
		r.CurrentPage = page
		r.PageSize = pageSize
		r.User = user
		r.LastAccessed = time.Now()
		records[token] = r
		return nil
	}
	return m
}

func newPaginator(methods ...pagination.Method) *pagination.Paginator {
	registry := pagination.NewRegistry()
	for _, m := range methods {
		registry.Register(m)
	}
	return pagination.New(
		registry,
		inMemoryCache(),
		pagination.Config{DefaultPageSize: 20, PageLimit: 1000000, PageSizeLimit: 200},
		silent,
	)
}
