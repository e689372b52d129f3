package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/middleware"
)

// PagesHandler serves minimal HTML shells for the browser routes so the
// session middleware's redirect behavior is exercised end to end. The real
// dashboard UI is a separate frontend consuming the JSON API.
type PagesHandler struct{}

// NewPagesHandler creates a new pages handler.
func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) Home(c echo.Context) error {
	return c.HTML(http.StatusOK, `<html><body><h1>CRM</h1><a href="/login">Log in</a></body></html>`)
}

func (h *PagesHandler) Login(c echo.Context) error {
	return c.HTML(http.StatusOK, `<html><body><h1>Log in</h1></body></html>`)
}

func (h *PagesHandler) Register(c echo.Context) error {
	return c.HTML(http.StatusOK, `<html><body><h1>Register</h1></body></html>`)
}

func (h *PagesHandler) Dashboard(c echo.Context) error {
	name := "there"
	if principal := middleware.GetPrincipal(c); principal != nil && principal.FirstName != "" {
		name = principal.FirstName
	}
	return c.HTML(http.StatusOK, `<html><body><h1>Dashboard</h1><p>Welcome back, `+name+`.</p></body></html>`)
}
