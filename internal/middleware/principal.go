package middleware

import (
	"github.com/labstack/echo/v4"

	"crmhub/internal/auth"
)

// principalKey is where the resolved principal lives in the echo context.
const principalKey = "principal"

// RoleDemo is the synthetic role of a demo-mode session. It passes
// authentication but fails every role allow-list.
const RoleDemo = "demo"

// Principal is the authenticated (or demo) identity behind a request.
type Principal struct {
	UserID    string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Demo      bool   `json:"demo,omitempty"`
}

// DemoPrincipal is the identity granted by the demo-mode cookie.
func DemoPrincipal() *Principal {
	return &Principal{
		UserID:    "demo",
		Email:     "demo@example.com",
		Role:      RoleDemo,
		FirstName: "Demo",
		LastName:  "User",
		Demo:      true,
	}
}

func principalFromClaims(claims *auth.Claims) *Principal {
	return &Principal{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}
}

// SetPrincipal stores the principal on the request context.
func SetPrincipal(c echo.Context, p *Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the request principal, or nil when unauthenticated.
func GetPrincipal(c echo.Context) *Principal {
	p, _ := c.Get(principalKey).(*Principal)
	return p
}
