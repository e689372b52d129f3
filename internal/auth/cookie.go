package auth

import (
	"net/http"
	"time"
)

const (
	// AuthCookieName is the session token cookie.
	AuthCookieName = "auth-token"
	// DemoCookieName marks an unauthenticated demo session.
	DemoCookieName = "demo-mode"
	// DemoCookieExpiry is the lifetime of the demo-mode marker.
	DemoCookieExpiry = 24 * time.Hour
)

// CookieFactory builds the session cookies. Secure is set in production only
// so local development over plain HTTP keeps working.
type CookieFactory struct {
	secure bool
}

// NewCookieFactory creates a cookie factory.
func NewCookieFactory(secure bool) *CookieFactory {
	return &CookieFactory{secure: secure}
}

// AuthCookie wraps a session token into the auth cookie.
func (f *CookieFactory) AuthCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionExpiry / time.Second),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredAuthCookie returns a cookie that deletes the auth cookie client-side.
func (f *CookieFactory) ExpiredAuthCookie() *http.Cookie {
	return &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// DemoCookie returns the 24h demo-mode marker cookie.
func (f *CookieFactory) DemoCookie() *http.Cookie {
	return &http.Cookie{
		Name:     DemoCookieName,
		Value:    "true",
		Path:     "/",
		MaxAge:   int(DemoCookieExpiry / time.Second),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ExpiredDemoCookie returns a cookie that deletes the demo-mode marker.
func (f *CookieFactory) ExpiredDemoCookie() *http.Cookie {
	return &http.Cookie{
		Name:     DemoCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
