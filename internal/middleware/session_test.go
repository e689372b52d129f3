package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"crmhub/internal/auth"
)

func newSessionApp(t *testing.T, demoEnabled bool) (*echo.Echo, SessionConfig) {
	t.Helper()

	cfg := SessionConfig{
		Tokens:      auth.NewJWTService("test-secret"),
		Cookies:     auth.NewCookieFactory(false),
		DemoEnabled: demoEnabled,
	}

	e := echo.New()
	e.Use(Session(cfg))
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/", ok)
	e.GET("/healthz", ok)
	e.GET("/login", ok)
	e.GET("/register", ok)
	e.GET("/dashboard", ok)
	e.GET("/api/customers", ok)
	return e, cfg
}

func validToken(t *testing.T, cfg SessionConfig) string {
	t.Helper()
	token, err := cfg.Tokens.Generate("user-1", "jane@example.com", "staff", "Jane", "Doe")
	assert.NoError(t, err)
	return token
}

func TestSession_PublicPathsNeverRedirect(t *testing.T) {
	e, _ := newSessionApp(t, true)

	for _, path := range []string{"/", "/healthz"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}

	// Even with a stale cookie, public pages stay reachable.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_ProtectedPage_NoToken_RedirectsToLogin(t *testing.T) {
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSession_ProtectedPage_InvalidToken_ClearsCookieAndRedirects(t *testing.T) {
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.AuthCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the auth cookie to be cleared")
}

func TestSession_ProtectedPage_ValidToken_Allows(t *testing.T) {
	e, cfg := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: validToken(t, cfg)})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_AuthPage_ValidToken_RedirectsToDashboard(t *testing.T) {
	e, cfg := newSessionApp(t, true)

	for _, path := range []string{"/login", "/register"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.AddCookie(&http.Cookie{Name: auth.AuthCookieName, Value: validToken(t, cfg)})
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
		})
	}
}

func TestSession_AuthPage_NoToken_Allows(t *testing.T) {
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_DemoQuery_SetsCookieAndAllows(t *testing.T) {
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard?demo=true", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var demoSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.DemoCookieName && c.Value == "true" {
			demoSet = true
		}
	}
	assert.True(t, demoSet, "expected the demo cookie to be set")
}

func TestSession_DemoCookie_AllowsWithoutToken(t *testing.T) {
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.DemoCookieName, Value: "true"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSession_DemoDisabled_IgnoresDemoCookie(t *testing.T) {
	e, _ := newSessionApp(t, false)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: auth.DemoCookieName, Value: "true"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSession_APIPaths_PassThroughWithoutRedirect(t *testing.T) {
	// JSON routes are the guard's job; the session gate must not redirect them.
	e, _ := newSessionApp(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
