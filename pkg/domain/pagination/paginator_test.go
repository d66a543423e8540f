package pagination_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/rpatil524/mlrun/pkg/cmp"
	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/pagination/db/mock"
)

var silent = log.New(io.Discard, "", 0)

// in-memory pagination cache backed by the mock.
func inMemoryCache(records map[string]domain.PaginationRecord) *mock.MockCacheInterface {
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

// a paginable method listing the integers [0, total).
func countUp(name string, total int) pagination.Method {
	return pagination.Method{
		Name: name,
		Params: pagination.Schema{
			{Name: "flavor", Kind: pagination.KindString, Default: "plain"},
		},
		Fetch: func(_ context.Context, kwargs map[string]any, bounds *domain.Bounds) ([]any, error) {
			items := []any{}
			if bounds == nil {
				for i := 0; i < total; i++ {
					items = append(items, i)
				}
				return items, nil
			}
			for i := bounds.Offset; i < total && len(items) < bounds.Limit; i++ {
				items = append(items, i)
			}
			return items, nil
		},
	}
}

func defaultConf() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, PageLimit: 1000000, PageSizeLimit: 200}
}

func TestPaginate(t *testing.T) {
	ctx := context.Background()
	user1 := &domain.AuthInfo{UserId: "user-1"}

	t.Run("when neither page size nor token is given, it returns everything without caching", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 5))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		items, info, err := testee.Paginate(ctx, pagination.Request{Method: "countup", Auth: user1})
		if err != nil {
			t.Fatal(err)
		}
		if info != nil {
			t.Errorf("unexpected pagination info: %+v", info)
		}
		if expected := []any{0, 1, 2, 3, 4}; !cmp.SliceEq(items, expected) {
			t.Errorf("unmatch: items: (actual, expected) = (%v, %v)", items, expected)
		}
		if len(records) != 0 {
			t.Errorf("cache records are created, unexpectedly: %+v", records)
		}
	})

	t.Run("it pages through 10 items 3 at a time", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		// page 1: explicit request
		items, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, PageSize: 3,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(items, []any{0, 1, 2}) {
			t.Errorf("unmatch: page 1: %v", items)
		}
		if info == nil || info.Page != 1 || info.PageSize != 3 || info.PageToken == "" {
			t.Fatalf("unmatch: page 1 info: %+v", info)
		}
		token := info.PageToken

		// pages 2 and 3: resume by token only
		for nth, expected := range [][]any{{3, 4, 5}, {6, 7, 8}} {
			items, info, err = testee.Paginate(ctx, pagination.Request{
				Method: "countup", Auth: user1, Token: token,
			})
			if err != nil {
				t.Fatal(err)
			}
			if !cmp.SliceEq(items, expected) {
				t.Errorf("unmatch: page %d: (actual, expected) = (%v, %v)", nth+2, items, expected)
			}
			if info == nil || info.Page != nth+2 || info.PageToken != token {
				t.Fatalf("unmatch: page %d info: %+v", nth+2, info)
			}
			if r := records[token]; r.CurrentPage != nth+2 {
				t.Errorf("unmatch: stored page: (actual, expected) = (%d, %d)", r.CurrentPage, nth+2)
			}
		}

		// page 4 is the last one: token is withheld, record survives
		items, info, err = testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Token: token,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(items, []any{9}) {
			t.Errorf("unmatch: page 4: %v", items)
		}
		if info == nil || info.Page != 4 || info.PageToken != "" {
			t.Fatalf("unmatch: page 4 info: %+v", info)
		}
		if _, ok := records[token]; !ok {
			t.Error("record is evicted on the last page, unexpectedly")
		}

		// beyond the end: empty items, nil info
		items, info, err = testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Token: token,
		})
		if err != nil {
			t.Fatal(err)
		}
		if info != nil {
			t.Errorf("unexpected pagination info: %+v", info)
		}
		if items == nil || len(items) != 0 {
			t.Errorf("unmatch: items: (actual, expected) = (%v, [])", items)
		}
	})

	t.Run("when a token and an explicit page are given, the explicit page wins", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		_, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, PageSize: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		items, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Token: info.PageToken, Page: 3,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(items, []any{6, 7, 8}) {
			t.Errorf("unmatch: items: %v", items)
		}
		if info.Page != 3 {
			t.Errorf("unmatch: page: (actual, expected) = (%d, 3)", info.Page)
		}
	})

	t.Run("it restores the stored kwargs when resuming, defaults included", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		var got []map[string]any
		registry := pagination.NewRegistry()
		registry.Register(pagination.Method{
			Name: "spy",
			Params: pagination.Schema{
				{Name: "flavor", Kind: pagination.KindString, Default: "plain"},
				{Name: "count", Kind: pagination.KindInt},
			},
			Fetch: func(_ context.Context, kwargs map[string]any, bounds *domain.Bounds) ([]any, error) {
				got = append(got, kwargs)
				return []any{0, 1, 2, 3}, nil
			},
		})
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		_, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "spy", Auth: user1, PageSize: 3,
			Kwargs: map[string]any{"count": 42},
		})
		if err != nil {
			t.Fatal(err)
		}
		_, _, err = testee.Paginate(ctx, pagination.Request{
			Method: "spy", Auth: user1, Token: info.PageToken,
		})
		if err != nil {
			t.Fatal(err)
		}

		expected := map[string]any{"flavor": "plain", "count": 42}
		if len(got) != 2 {
			t.Fatalf("fetch is called %d times, expected 2", len(got))
		}
		for nth, kwargs := range got {
			if !cmp.MapEq(kwargs, expected) {
				t.Errorf("unmatch: kwargs of fetch #%d: (actual, expected) = (%v, %v)", nth+1, kwargs, expected)
			}
		}
	})

	t.Run("when the page is over the limit, it rejects the request before touching the cache", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		conf := defaultConf()
		conf.PageLimit = 100
		testee := pagination.New(registry, inMemoryCache(records), conf, silent)

		_, _, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Page: 101, PageSize: 3,
		})
		if !errors.Is(err, kerr.ErrInvalidArgument) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrInvalidArgument)
		}
		if len(records) != 0 {
			t.Errorf("cache records are created, unexpectedly: %+v", records)
		}
	})

	t.Run("when the page size is over the limit, it rejects the request", func(t *testing.T) {
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		conf := defaultConf()
		conf.PageSizeLimit = 200
		testee := pagination.New(registry, inMemoryCache(map[string]domain.PaginationRecord{}), conf, silent)

		_, _, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, PageSize: 201,
		})
		if !errors.Is(err, kerr.ErrInvalidArgument) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrInvalidArgument)
		}
	})

	t.Run("when the page is negative, it rejects the request", func(t *testing.T) {
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		testee := pagination.New(registry, inMemoryCache(map[string]domain.PaginationRecord{}), defaultConf(), silent)

		_, _, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Page: -1, PageSize: 3,
		})
		if !errors.Is(err, kerr.ErrInvalidArgument) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrInvalidArgument)
		}
	})

	t.Run("when the method is not registered, it fails with unsupported method", func(t *testing.T) {
		testee := pagination.New(
			pagination.NewRegistry(),
			inMemoryCache(map[string]domain.PaginationRecord{}),
			defaultConf(), silent,
		)

		_, _, err := testee.Paginate(ctx, pagination.Request{Method: "no-such-method", Auth: user1})
		if !errors.Is(err, kerr.ErrUnsupportedMethod) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrUnsupportedMethod)
		}
	})

	t.Run("when the token is unknown or evicted, it fails with missing", func(t *testing.T) {
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		testee := pagination.New(registry, inMemoryCache(map[string]domain.PaginationRecord{}), defaultConf(), silent)

		_, _, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, Token: "gone",
		})
		if !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrMissing)
		}
	})
}

func TestPaginate_TokenOwnership(t *testing.T) {
	ctx := context.Background()
	user1 := &domain.AuthInfo{UserId: "user-1"}
	user2 := &domain.AuthInfo{UserId: "user-2"}

	newTestee := func(records map[string]domain.PaginationRecord) *pagination.Paginator {
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 10))
		return pagination.New(registry, inMemoryCache(records), defaultConf(), silent)
	}

	t.Run("another user's token is rejected", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		testee := newTestee(records)

		_, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, PageSize: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		_, _, err = testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user2, Token: info.PageToken,
		})
		if !errors.Is(err, kerr.ErrAccessDenied) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrAccessDenied)
		}
	})

	t.Run("an anonymous caller may not use an owned token", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		testee := newTestee(records)

		_, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user1, PageSize: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		_, _, err = testee.Paginate(ctx, pagination.Request{
			Method: "countup", Token: info.PageToken,
		})
		if !errors.Is(err, kerr.ErrAccessDenied) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrAccessDenied)
		}
	})

	t.Run("a token created anonymously is open to anyone", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		testee := newTestee(records)

		_, info, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", PageSize: 3,
		})
		if err != nil {
			t.Fatal(err)
		}

		items, _, err := testee.Paginate(ctx, pagination.Request{
			Method: "countup", Auth: user2, Token: info.PageToken,
		})
		if err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(items, []any{3, 4, 5}) {
			t.Errorf("unmatch: items: %v", items)
		}
	})
}

func TestPaginateFiltered(t *testing.T) {
	ctx := context.Background()
	user1 := &domain.AuthInfo{UserId: "user-1"}

	keepOnly := func(allowed ...int) pagination.Filter {
		return func(_ context.Context, items []any) ([]any, error) {
			kept := []any{}
			for _, item := range items {
				for _, a := range allowed {
					if item == a {
						kept = append(kept, item)
						break
					}
				}
			}
			return kept, nil
		}
	}

	t.Run("it refetches until enough items survive the filter", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 20))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		items, info, err := testee.PaginateFiltered(
			ctx,
			pagination.Request{Method: "countup", Auth: user1, PageSize: 4},
			keepOnly(0, 1, 7, 8, 9, 10, 11, 12),
		)
		if err != nil {
			t.Fatal(err)
		}

		// three underlying pages ({0..3}, {4..7}, {8..11}) are fetched;
		// survivors may overflow the page size, but never reach 2x.
		if expected := []any{0, 1, 7, 8, 9, 10, 11}; !cmp.SliceEq(items, expected) {
			t.Errorf("unmatch: items: (actual, expected) = (%v, %v)", items, expected)
		}
		if info == nil || info.Page != 3 || info.PageToken == "" {
			t.Fatalf("unmatch: info: %+v", info)
		}
		if r := records[info.PageToken]; r.CurrentPage != 3 {
			t.Errorf("unmatch: stored page: (actual, expected) = (%d, 3)", r.CurrentPage)
		}
	})

	t.Run("it stops at the end of the listing even when the filter keeps nothing", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 5))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		items, info, err := testee.PaginateFiltered(
			ctx,
			pagination.Request{Method: "countup", Auth: user1, PageSize: 4},
			keepOnly( /* nothing */ ),
		)
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 0 {
			t.Errorf("unmatch: items: (actual, expected) = (%v, [])", items)
		}
		if info == nil || info.PageToken != "" {
			t.Errorf("unmatch: info: %+v", info)
		}
	})

	t.Run("it passes filter errors through", func(t *testing.T) {
		records := map[string]domain.PaginationRecord{}
		registry := pagination.NewRegistry()
		registry.Register(countUp("countup", 20))
		testee := pagination.New(registry, inMemoryCache(records), defaultConf(), silent)

		expectedErr := errors.New("fake error")
		_, _, err := testee.PaginateFiltered(
			ctx,
			pagination.Request{Method: "countup", Auth: user1, PageSize: 4},
			func(context.Context, []any) ([]any, error) { return nil, expectedErr },
		)
		if !errors.Is(err, expectedErr) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, expectedErr)
		}
	})
}
