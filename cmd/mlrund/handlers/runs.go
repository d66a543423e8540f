package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpatil524/mlrun/pkg/domain"
	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/run"
)

// Authorizer yields the run visibility filter for a caller.
// A nil AuthInfo is an anonymous caller.
type Authorizer func(auth *domain.AuthInfo) pagination.Filter

// ListRunsHandler serves one page of the run listing, filtered down to
// the runs the caller may see.
//
// The authorizer's filter drops unauthorized runs after each underlying
// fetch, so a page here may be backed by several fetches, and may carry
// more than "page-size" items when the last fetch overshoots the
// threshold.
func ListRunsHandler(paginator *pagination.Paginator, authorize Authorizer) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		req, err := paginationRequest(c, run.ListMethod)
		if err != nil {
			return err
		}

		kwargs := map[string]any{}
		if project := c.QueryParam("project"); project != "" {
			kwargs["project"] = project
		}
		if name := c.QueryParam("name"); name != "" {
			kwargs["name"] = name
		}
		if state := c.QueryParam("state"); state != "" {
			kwargs["state"] = state
		}
		req.Kwargs = kwargs

		items, info, err := paginator.PaginateFiltered(c.Request().Context(), req, authorize(req.Auth))
		if err != nil {
			return asAPIError(err)
		}

		return c.JSON(http.StatusOK, runList{Runs: items, Pagination: info})
	}
}
