package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/service"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	svc service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// List godoc
// @Summary List audit log entries (admin only)
// @Tags audit
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /audit-logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	entries, total, err := h.svc.List(c.Request().Context(), page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{
		Data: entries,
		Meta: Meta{Page: page, Limit: limit, Total: total},
	})
}
