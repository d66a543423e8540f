package pagination

import (
	"context"
	"fmt"
	"log"

	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	paginationdb "github.com/rpatil524/mlrun/pkg/domain/pagination/db"
)

// Config bounds what callers may ask for.
type Config struct {
	// page size applied when a caller requests pagination without one.
	DefaultPageSize int

	// highest page number a caller may request.
	PageLimit int

	// largest page size a caller may request.
	PageSizeLimit int
}

// Request is one pagination request.
//
// Zero Page/PageSize mean "not set"; empty Token means "no token".
// When both PageSize and Token are unset, the method is invoked without
// bounds and no cache record is created.
type Request struct {
	Method   string
	Auth     *domain.AuthInfo
	Token    string
	Page     int
	PageSize int
	Kwargs   map[string]any
}

// Paginator drives bounded fetches of registered methods and keeps
// their resume state in the pagination cache.
//
// It holds no per-request state itself: everything a later page needs
// lives in the cache record behind the token.
type Paginator struct {
	registry *Registry
	cache    paginationdb.Interface
	conf     Config
	logger   *log.Logger
}

func New(registry *Registry, cache paginationdb.Interface, conf Config, logger *log.Logger) *Paginator {
	return &Paginator{
		registry: registry,
		cache:    cache,
		conf:     conf,
		logger:   logger,
	}
}

// Paginate serves one page of req.Method's listing.
//
// Returned PaginationInfo is nil when the listing is definitively
// exhausted (or when the no-pagination shortcut was taken). On the last
// page the info is returned with an empty PageToken: the record stays in
// the cache so earlier pages remain reachable with the old token value,
// but no token is handed out anymore.
func (p *Paginator) Paginate(ctx context.Context, req Request) ([]any, *domain.PaginationInfo, error) {
	method, err := p.registry.Resolve(req.Method)
	if err != nil {
		return nil, nil, err
	}

	if req.PageSize == 0 && req.Token == "" {
		p.logger.Printf("no token or page size given. returning all records of %s", method.Name)
		items, err := method.Fetch(ctx, req.Kwargs, nil)
		if err != nil {
			return nil, nil, err
		}
		return items, nil, nil
	}

	if req.Page > p.conf.PageLimit {
		return nil, nil, kerr.InvalidArgument{
			Reason: fmt.Sprintf("'page' must be less than or equal to %d", p.conf.PageLimit),
		}
	}
	if req.PageSize > p.conf.PageSizeLimit {
		return nil, nil, kerr.InvalidArgument{
			Reason: fmt.Sprintf("'page_size' must be less than or equal to %d", p.conf.PageSizeLimit),
		}
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = p.conf.DefaultPageSize
	}

	token, page, pageSize, method, kwargs, err := p.upsertRecord(
		ctx, method, req.Auth, req.Token, req.Page, pageSize, req.Kwargs,
	)
	if err != nil {
		return nil, nil, err
	}

	offset, limit, err := offsetAndLimit(page, pageSize)
	if err != nil {
		return nil, nil, err
	}

	p.logger.Printf("retrieving page %d (size %d) of %s", page, pageSize, method.Name)
	items, err := method.Fetch(ctx, kwargs, &domain.Bounds{Offset: offset, Limit: limit})
	if err != nil {
		return nil, nil, err
	}

	if len(items) == 0 {
		return []any{}, nil, nil
	}

	info := &domain.PaginationInfo{Page: page, PageSize: pageSize, PageToken: token}
	if len(items) < limit {
		// fewer items than requested (page_size + 1):
		// this is the last page, so the token is withheld.
		info.PageToken = ""
	}
	if len(items) > pageSize {
		// drop the lookahead item
		items = items[:pageSize]
	}
	return items, info, nil
}

// PaginateFiltered serves one logical page of authorized items.
//
// The filter runs after each underlying fetch and may shrink its batch,
// so underlying pages are fetched until at least PageSize survivors are
// collected or the listing is exhausted. Because the final fetch can
// contribute up to a full page beyond the threshold, the result may
// hold up to 2*PageSize-1 items. That overflow is accepted, not trimmed.
func (p *Paginator) PaginateFiltered(ctx context.Context, req Request, filter Filter) ([]any, *domain.PaginationInfo, error) {
	var last *domain.PaginationInfo
	result := []any{}

	token := req.Token
	page := req.Page
	pageSize := req.PageSize

	for pageSize == 0 || len(result) < pageSize {
		items, info, err := p.Paginate(ctx, Request{
			Method:   req.Method,
			Auth:     req.Auth,
			Token:    token,
			Page:     page,
			PageSize: pageSize,
			Kwargs:   req.Kwargs,
		})
		if err != nil {
			return nil, nil, err
		}
		items, err = filter(ctx, items)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, items...)

		if info == nil {
			// no more results
			break
		}
		last = info
		if info.PageToken == "" {
			// last underlying page has been served
			break
		}
		token = info.PageToken
		page = info.Page + 1
		pageSize = info.PageSize
	}

	return result, last, nil
}

// upsertRecord resumes the cache record behind token, or creates a new
// one when no token is given. It returns the effective token, page,
// page size, method and kwargs for this request.
func (p *Paginator) upsertRecord(
	ctx context.Context,
	method Method,
	auth *domain.AuthInfo,
	token string,
	page int,
	pageSize int,
	kwargs map[string]any,
) (string, int, int, Method, map[string]any, error) {
	fail := func(err error) (string, int, int, Method, map[string]any, error) {
		return "", 0, 0, Method{}, nil, err
	}

	user := ""
	if auth != nil {
		user = auth.UserId
	}

	if token != "" {
		record, err := p.cache.Get(ctx, token)
		if err != nil {
			return fail(err) // unwraps to ErrMissing: token unknown or expired
		}
		if record.User != "" && record.User != user {
			// ownership is strict. Anonymous callers are rejected too.
			return fail(kerr.AccessDenied{
				Reason: "user is not allowed to access this token",
			})
		}

		method, err = p.registry.Resolve(record.Method)
		if err != nil {
			return fail(err)
		}
		kwargs, err = method.Params.Unmarshal(record.Kwargs)
		if err != nil {
			return fail(err)
		}
		if page == 0 {
			page = record.CurrentPage + 1
		}
		// page size cannot change mid-sequence
		pageSize = record.PageSize

		if err := p.cache.Update(ctx, token, page, pageSize, user); err != nil {
			return fail(err)
		}
		return token, page, pageSize, method, kwargs, nil
	}

	if page == 0 {
		page = 1
	}

	raw, err := method.Params.Marshal(kwargs)
	if err != nil {
		return fail(err)
	}
	// round-trip through the schema so the fetch sees the same effective
	// parameter set (defaults included) on the first page as on any resume.
	kwargs, err = method.Params.Unmarshal(raw)
	if err != nil {
		return fail(err)
	}

	p.logger.Printf("storing pagination cache record for %s (page=%d, page_size=%d)", method.Name, page, pageSize)
	token, err = p.cache.Create(ctx, user, method.Name, page, pageSize, raw)
	if err != nil {
		return fail(err)
	}
	return token, page, pageSize, method, kwargs, nil
}

func offsetAndLimit(page int, pageSize int) (int, int, error) {
	if page < 1 || pageSize < 1 {
		return 0, 0, kerr.InvalidArgument{
			Reason: "page and page size must be greater than 0",
		}
	}
	// one extra record to learn whether a further page exists,
	// without assuming the backing store can count.
	return (page - 1) * pageSize, pageSize + 1, nil
}
