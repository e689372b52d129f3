package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCookieFactory_AuthCookie(t *testing.T) {
	f := NewCookieFactory(false)

	c := f.AuthCookie("token-value")
	assert.Equal(t, AuthCookieName, c.Name)
	assert.Equal(t, "token-value", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int(7*24*time.Hour/time.Second), c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
}

func TestCookieFactory_SecureInProduction(t *testing.T) {
	f := NewCookieFactory(true)

	assert.True(t, f.AuthCookie("t").Secure)
	assert.True(t, f.DemoCookie().Secure)
	assert.True(t, f.ExpiredAuthCookie().Secure)
}

func TestCookieFactory_DemoCookie(t *testing.T) {
	f := NewCookieFactory(false)

	c := f.DemoCookie()
	assert.Equal(t, DemoCookieName, c.Name)
	assert.Equal(t, "true", c.Value)
	assert.Equal(t, int(24*time.Hour/time.Second), c.MaxAge)
	assert.True(t, c.HttpOnly)
}

func TestCookieFactory_ExpiredCookies(t *testing.T) {
	f := NewCookieFactory(false)

	assert.Negative(t, f.ExpiredAuthCookie().MaxAge)
	assert.Negative(t, f.ExpiredDemoCookie().MaxAge)
	assert.Empty(t, f.ExpiredAuthCookie().Value)
}
