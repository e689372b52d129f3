package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"crmhub/internal/auth"
)

// Paths reachable without a session. The auth API endpoints are public so
// login and registration can happen at all. The login and register pages are
// handled separately: they are open, but an already-authenticated browser is
// bounced to the dashboard.
var publicPaths = map[string]bool{
	"/":        true,
	"/healthz": true,
}

var publicPrefixes = []string{
	"/swagger",
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/demo",
}

// SessionConfig wires the session gate.
type SessionConfig struct {
	Tokens      *auth.JWTService
	Cookies     *auth.CookieFactory
	DemoEnabled bool
}

// Session is the per-request authentication gate for browser page routes.
// It evaluates, in order: public path, ?demo=true activation, demo cookie,
// missing token, invalid token, valid token. API routes (/api/...) are left
// to the RequireAuth guard, which answers 401 JSON instead of redirecting.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if isPublicPath(path) {
				return next(c)
			}

			// ?demo=true starts an unauthenticated demo session. This is a
			// deliberate sales-demo bypass, gated by configuration.
			if cfg.DemoEnabled && c.QueryParam("demo") == "true" {
				c.SetCookie(cfg.Cookies.DemoCookie())
				SetPrincipal(c, DemoPrincipal())
				return next(c)
			}

			if cfg.DemoEnabled && hasDemoCookie(c) {
				SetPrincipal(c, DemoPrincipal())
				return next(c)
			}

			if strings.HasPrefix(path, "/api/") {
				// JSON routes never redirect; RequireAuth answers 401 there.
				return next(c)
			}

			authPage := path == "/login" || path == "/register"

			cookie, err := c.Cookie(auth.AuthCookieName)
			if err != nil || cookie.Value == "" {
				if authPage {
					return next(c)
				}
				return c.Redirect(http.StatusFound, "/login")
			}

			claims, err := cfg.Tokens.Verify(cookie.Value)
			if err != nil {
				c.SetCookie(cfg.Cookies.ExpiredAuthCookie())
				if authPage {
					return next(c)
				}
				return c.Redirect(http.StatusFound, "/login")
			}

			// Authenticated users have no business on the auth pages.
			if authPage {
				return c.Redirect(http.StatusFound, "/dashboard")
			}

			SetPrincipal(c, principalFromClaims(claims))
			return next(c)
		}
	}
}

func isPublicPath(path string) bool {
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func hasDemoCookie(c echo.Context) bool {
	cookie, err := c.Cookie(auth.DemoCookieName)
	return err == nil && cookie.Value == "true"
}
