package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/service"
)

// UserHandler exposes the role-gated user directory.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary List active users (admin and manager only)
// @Tags users
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.Directory(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
