package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"medihub/internal/application/usecase/abstraction"
	"medihub/internal/domain/repository/database"
	"medihub/internal/presentation"
)

type ListHandler struct {
	lister abstraction.Lister
}

func NewListHandler(lister abstraction.Lister) *ListHandler {
	return &ListHandler{
		lister: lister,
	}
}

// HandleList handles GET /documents requests.
func (h *ListHandler) HandleList(c echo.Context) error {
	since, err := parseTimeQueryParam(c, presentation.SinceParam)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	until, err := parseTimeQueryParam(c, presentation.UntilParam)
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(http.StatusBadRequest)
	}

	documents, status, err := h.lister.ListDocuments(c.Request().Context(), database.DocumentFilter{
		Classification: c.QueryParam(presentation.TypeParam),
		PatientID:      c.QueryParam(presentation.PatientIDParam),
		Since:          since,
		Until:          until,
	})
	if err != nil {
		c.Response().Header().Set(presentation.ReasonTag, err.Error())

		return c.NoContent(status)
	}

	return c.JSON(http.StatusOK, documents)
}

// parseTimeQueryParam parses a Unix timestamp string from query parameters into a *time.Time.
func parseTimeQueryParam(c echo.Context, paramName string) (*time.Time, error) {
	s := c.QueryParam(paramName)
	if s == "" {
		return nil, nil //nolint
	}

	ts, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid '%s' timestamp", paramName)
	}

	t := time.Unix(ts, 0)

	return &t, nil
}
