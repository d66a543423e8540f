package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rpatil524/mlrun/pkg/domain/pagination"
	"github.com/rpatil524/mlrun/pkg/domain/project"
)

// ListProjectsHandler serves one page of the project listing.
//
// Query parameters: "owner", "state" and "label" (repeatable) narrow the
// listing; "page", "page-size" and "page-token" drive pagination. A
// request carrying a token must not change the filter: the kwargs of the
// token's record win.
func ListProjectsHandler(paginator *pagination.Paginator) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Add("Content-Type", "application/json")

		req, err := paginationRequest(c, project.ListMethod)
		if err != nil {
			return err
		}

		kwargs := map[string]any{}
		if owner := c.QueryParam("owner"); owner != "" {
			kwargs["owner"] = owner
		}
		if state := c.QueryParam("state"); state != "" {
			kwargs["state"] = state
		}
		if labels := c.QueryParams()["label"]; 0 < len(labels) {
			kwargs["label"] = labels
		}
		req.Kwargs = kwargs

		items, info, err := paginator.Paginate(c.Request().Context(), req)
		if err != nil {
			return asAPIError(err)
		}

		return c.JSON(http.StatusOK, projectList{Projects: items, Pagination: info})
	}
}
