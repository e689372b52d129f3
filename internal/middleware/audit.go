package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"crmhub/internal/model"
	"crmhub/internal/service"
)

// AuditLogger records every successful mutating API request. Login, logout
// and registration are audited by the auth handler itself (they carry more
// context than the route alone), so /api/auth is skipped here.
func AuditLogger(audit service.AuditService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				return err
			}

			req := c.Request()
			if !isMutating(req.Method) {
				return nil
			}
			path := req.URL.Path
			if !strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/api/auth/") {
				return nil
			}
			if c.Response().Status >= 400 {
				return nil
			}

			entry := model.AuditLog{
				Action:     actionFor(req.Method),
				Resource:   resourceFor(path),
				ResourceID: c.Param("id"),
				IPAddress:  c.RealIP(),
				UserAgent:  req.UserAgent(),
			}
			if principal := GetPrincipal(c); principal != nil {
				entry.UserID = principal.UserID
			}
			audit.Record(entry)
			return nil
		}
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func actionFor(method string) string {
	switch method {
	case http.MethodPost:
		return model.AuditActionCreate
	case http.MethodDelete:
		return model.AuditActionDelete
	default:
		return model.AuditActionUpdate
	}
}

// resourceFor extracts the collection segment: /api/customers/123 -> customers.
func resourceFor(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	if idx := strings.IndexByte(trimmed, '/'); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}
