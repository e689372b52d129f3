package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/auth"
	apperrors "crmhub/internal/errors"
)

// RequireAuth is the single authorization guard for API routes. It resolves
// the principal (session middleware result, demo cookie, or the auth cookie
// directly), answers 401 when none is found and, when a role allow-list is
// given, 403 for principals outside it. Handlers read the principal from the
// context and never re-derive cookie logic themselves.
func RequireAuth(cfg SessionConfig, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := GetPrincipal(c)

			if principal == nil && cfg.DemoEnabled && hasDemoCookie(c) {
				principal = DemoPrincipal()
			}

			if principal == nil {
				cookie, err := c.Cookie(auth.AuthCookieName)
				if err != nil || cookie.Value == "" {
					return unauthorized(c)
				}
				claims, err := cfg.Tokens.Verify(cookie.Value)
				if err != nil {
					return unauthorized(c)
				}
				principal = principalFromClaims(claims)
			}

			if len(allowed) > 0 && !allowed[principal.Role] {
				return c.JSON(http.StatusForbidden, apperrors.ErrorResponse{Error: "Forbidden"})
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, apperrors.ErrorResponse{Error: "Unauthorized"})
}
