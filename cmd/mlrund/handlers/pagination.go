package handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	apierr "github.com/rpatil524/mlrun/pkg/api/types/errors"
	"github.com/rpatil524/mlrun/pkg/auth"
	"github.com/rpatil524/mlrun/pkg/domain"
	kerr "github.com/rpatil524/mlrun/pkg/domain/errors"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
)

// paginationRequest reads the pagination query parameters shared by all
// listing endpoints ("page", "page-size", "page-token") and the caller's
// identity. kwargs are endpoint-specific and filled in by each handler.
func paginationRequest(c echo.Context, method string) (pagination.Request, error) {
	req := pagination.Request{
		Method: method,
		Auth:   auth.FromRequest(c.Request()),
		Token:  c.QueryParam("page-token"),
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Request{}, apierr.BadRequest(
				`"page" should be an integer`, err,
			)
		}
		req.Page = page
	}

	if raw := c.QueryParam("page-size"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Request{}, apierr.BadRequest(
				`"page-size" should be an integer`, err,
			)
		}
		req.PageSize = pageSize
	}

	return req, nil
}

// asAPIError translates a domain error into the HTTP error to respond with.
func asAPIError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, kerr.ErrInvalidArgument):
		return apierr.BadRequest(err.Error(), err)
	case errors.Is(err, kerr.ErrAccessDenied):
		return apierr.Forbidden(err.Error(), err)
	case errors.Is(err, kerr.ErrMissing):
		return apierr.NotFound()
	case errors.Is(err, kerr.ErrUnsupportedMethod):
		return apierr.NotImplemented(err.Error(), err)
	}
	return apierr.InternalServerError(err)
}

type projectList struct {
	Projects   []any                  `json:"projects"`
	Pagination *domain.PaginationInfo `json:"pagination,omitempty"`
}

type runList struct {
	Runs       []any                  `json:"runs"`
	Pagination *domain.PaginationInfo `json:"pagination,omitempty"`
}
