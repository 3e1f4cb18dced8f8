package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"medihub/internal/application/usecase/abstraction"
	"medihub/internal/domain/dto"
	"medihub/internal/presentation"
)

// CredentialRecorder observes the outcome of every credential request.
type CredentialRecorder interface {
	RecordCredential(classification string, status int, sizeBytes int64)
}

type PresignedURLHandler struct {
	issuer   abstraction.Issuer
	recorder CredentialRecorder
}

func NewPresignedURLHandler(issuer abstraction.Issuer, recorder CredentialRecorder) *PresignedURLHandler {
	return &PresignedURLHandler{
		issuer:   issuer,
		recorder: recorder,
	}
}

// Handle handles POST /get-presigned-url requests. Failures are answered with
// a plain-text reason that the client surfaces verbatim.
func (h *PresignedURLHandler) Handle(c echo.Context) error {
	var request dto.PresignedURLRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &request); err != nil {
		return h.reject(c, request, http.StatusBadRequest, "invalid request body")
	}

	resp, status, err := h.issuer.Issue(c.Request().Context(), request)
	if err != nil {
		return h.reject(c, request, status, err.Error())
	}

	h.record(request, http.StatusOK)

	return c.JSON(http.StatusOK, resp)
}

func (h *PresignedURLHandler) reject(c echo.Context, request dto.PresignedURLRequest, status int,
	reason string,
) error {
	h.record(request, status)
	c.Response().Header().Set(presentation.ReasonTag, reason)

	return c.String(status, reason)
}

func (h *PresignedURLHandler) record(request dto.PresignedURLRequest, status int) {
	if h.recorder != nil {
		h.recorder.RecordCredential(request.Type, status, request.FileSize)
	}
}
