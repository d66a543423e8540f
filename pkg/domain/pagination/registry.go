package pagination

import (
	"context"

	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
)

// Fetch performs one bounded fetch of a paginable listing.
//
// kwargs are the method's keyword parameters, already validated against
// the method's Schema. bounds is the offset/limit window to apply;
// nil bounds means "return everything".
//
// The slice must be a stable, order-preserving view over the underlying
// listing: the same kwargs with adjacent windows must yield adjacent items.
type Fetch func(ctx context.Context, kwargs map[string]any, bounds *domain.Bounds) ([]any, error)

// Filter drops items the caller is not allowed to see. It may call out
// to external services, so it takes a context.
type Filter func(ctx context.Context, items []any) ([]any, error)

// Method is one paginable operation.
type Method struct {
	// unique name. Persisted in cache records, so renaming a method
	// invalidates tokens issued for it.
	Name string

	Fetch Fetch

	Params Schema
}

// Registry maps method names to their Fetch and Schema.
//
// There is one Registry per process, built by the composition root at
// startup and treated as immutable afterwards. It is not safe to call
// Register concurrently with lookups.
type Registry struct {
	methods map[string]Method
}

func NewRegistry() *Registry {
	return &Registry{methods: map[string]Method{}}
}

// Register adds a method. Registering the same name twice replaces the
// earlier entry (last registration wins).
func (r *Registry) Register(m Method) {
	r.methods[m.Name] = m
}

func (r *Registry) IsSupported(name string) bool {
	_, ok := r.methods[name]
	return ok
}

// Resolve returns the method registered under name.
//
// The error unwraps to kerr.ErrUnsupportedMethod. It is fatal to the
// pagination request using it: there is nothing to retry.
func (r *Registry) Resolve(name string) (Method, error) {
	m, ok := r.methods[name]
	if !ok {
		return Method{}, kerr.UnsupportedMethod{Name: name}
	}
	return m, nil
}

func (r *Registry) SchemaFor(name string) (Schema, error) {
	m, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return m.Params, nil
}
