package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"medihub/internal/presentation"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	dependencies map[string]Pinger
}

func NewHealthHandler(dependencies map[string]Pinger) *HealthHandler {
	return &HealthHandler{dependencies: dependencies}
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(c echo.Context) error {
	status := make(map[string]string, len(h.dependencies))
	healthy := true

	for name, dep := range h.dependencies {
		if err := dep.Ping(c.Request().Context()); err != nil {
			status[name] = err.Error()
			healthy = false

			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		c.Response().Header().Set(presentation.ReasonTag, "dependency unavailable")

		return c.JSON(http.StatusServiceUnavailable, status)
	}

	return c.JSON(http.StatusOK, status)
}
