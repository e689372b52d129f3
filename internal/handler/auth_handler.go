package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/auth"
	apperrors "crmhub/internal/errors"
	"crmhub/internal/middleware"
	"crmhub/internal/model"
	"crmhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	audit       service.AuditService
	cookies     *auth.CookieFactory
	demoEnabled bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, audit service.AuditService, cookies *auth.CookieFactory, demoEnabled bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
		cookies:     cookies,
		demoEnabled: demoEnabled,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return fail(c, err)
	}

	c.SetCookie(h.cookies.AuthCookie(token))
	h.recordAudit(c, model.AuditActionCreate, "users", user.ID.String())

	return c.JSON(http.StatusCreated, DataResponse{Data: toUserResponse(user)})
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	c.SetCookie(h.cookies.AuthCookie(token))
	h.recordAudit(c, model.AuditActionLogin, "sessions", user.ID.String())

	return c.JSON(http.StatusOK, DataResponse{Data: toUserResponse(user)})
}

// Logout godoc
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Stateless tokens: logout only deletes the client cookies. A captured
	// token stays valid until its natural expiry; that trust model is part
	// of the design.
	c.SetCookie(h.cookies.ExpiredAuthCookie())
	c.SetCookie(h.cookies.ExpiredDemoCookie())

	if principal := middleware.GetPrincipal(c); principal != nil && !principal.Demo {
		h.recordAudit(c, model.AuditActionLogout, "sessions", principal.UserID)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// Me godoc
// @Summary Current session identity
// @Tags auth
// @Produce json
// @Success 200 {object} middleware.Principal
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		return fail(c, apperrors.ErrUnauthorized)
	}
	return c.JSON(http.StatusOK, principal)
}

// Demo godoc
// @Summary Start an unauthenticated demo session
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/demo [post]
func (h *AuthHandler) Demo(c echo.Context) error {
	if !h.demoEnabled {
		return fail(c, apperrors.ErrDemoDisabled)
	}
	c.SetCookie(h.cookies.DemoCookie())
	return c.JSON(http.StatusOK, map[string]string{"message": "demo mode enabled"})
}

func (h *AuthHandler) recordAudit(c echo.Context, action, resource, resourceID string) {
	h.audit.Record(model.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		UserID:     resourceID,
		IPAddress:  c.RealIP(),
		UserAgent:  c.Request().UserAgent(),
	})
}
