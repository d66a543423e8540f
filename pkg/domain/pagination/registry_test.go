package pagination_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
)

func TestRegistry(t *testing.T) {
	noop := func(context.Context, map[string]any, *domain.Bounds) ([]any, error) {
		return []any{}, nil
	}

	t.Run("it resolves a registered method", func(t *testing.T) {
		testee := pagination.NewRegistry()
		testee.Register(pagination.Method{Name: "list_things", Fetch: noop})

		if !testee.IsSupported("list_things") {
			t.Error("registered method is not supported")
		}

		m, err := testee.Resolve("list_things")
		if err != nil {
			t.Fatal(err)
		}
		if m.Name != "list_things" {
			t.Errorf("unmatch: name: (actual, expected) = (%s, list_things)", m.Name)
		}
	})

	t.Run("it does not resolve an unregistered method", func(t *testing.T) {
		testee := pagination.NewRegistry()

		if testee.IsSupported("list_things") {
			t.Error("unregistered method is supported, unexpectedly")
		}

		_, err := testee.Resolve("list_things")
		if !errors.Is(err, kerr.ErrUnsupportedMethod) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrUnsupportedMethod)
		}

		_, err = testee.SchemaFor("list_things")
		if !errors.Is(err, kerr.ErrUnsupportedMethod) {
			t.Errorf("unmatch: error: (actual, expected) = (%v, %v)", err, kerr.ErrUnsupportedMethod)
		}
	})

	t.Run("a later registration under the same name wins", func(t *testing.T) {
		testee := pagination.NewRegistry()
		testee.Register(pagination.Method{Name: "list_things", Fetch: noop})
		testee.Register(pagination.Method{
			Name:   "list_things",
			Fetch:  noop,
			Params: pagination.Schema{{Name: "owner", Kind: pagination.KindString}},
		})

		schema, err := testee.SchemaFor("list_things")
		if err != nil {
			t.Fatal(err)
		}
		if len(schema) != 1 || schema[0].Name != "owner" {
			t.Errorf("unmatch: schema: %+v", schema)
		}
	})
}
