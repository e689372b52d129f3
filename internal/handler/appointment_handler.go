package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"crmhub/internal/model"
	"crmhub/internal/repository"
	"crmhub/internal/service"
)

// AppointmentHandler handles appointment endpoints.
type AppointmentHandler struct {
	svc service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(svc service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

// AppointmentRequest is the create/update payload for an appointment.
type AppointmentRequest struct {
	CustomerID string    `json:"customerId" validate:"required,uuid"`
	EmployeeID string    `json:"employeeId" validate:"required"`
	Title      string    `json:"title" validate:"required"`
	Notes      string    `json:"notes"`
	StartTime  time.Time `json:"startTime" validate:"required"`
	EndTime    time.Time `json:"endTime" validate:"required"`
	Status     string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

func (r *AppointmentRequest) toModel() (*model.Appointment, error) {
	customerID, err := uuid.Parse(r.CustomerID)
	if err != nil {
		return nil, err
	}
	return &model.Appointment{
		CustomerID: customerID,
		EmployeeID: r.EmployeeID,
		Title:      r.Title,
		Notes:      r.Notes,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Status:     r.Status,
	}, nil
}

// List godoc
// @Summary List appointments
// @Tags appointments
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param employeeId query string false "Filter by employee"
// @Param customerId query string false "Filter by customer"
// @Param status query string false "Filter by status"
// @Param from query string false "Window start (RFC 3339)"
// @Param to query string false "Window end (RFC 3339)"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.AppointmentFilter{
		EmployeeID: c.QueryParam("employeeId"),
		Status:     c.QueryParam("status"),
	}
	if raw := c.QueryParam("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return badRequest(c, "invalid customerId")
		}
		filter.CustomerID = id
	}
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid from timestamp")
		}
		filter.From = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "invalid to timestamp")
		}
		filter.To = t
	}

	appts, total, err := h.svc.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{
		Data: appts,
		Meta: Meta{Page: page, Limit: limit, Total: total},
	})
}

// Get godoc
// @Summary Get an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}
	appt, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: appt})
}

// Create godoc
// @Summary Schedule an appointment
// @Description Rejects with 409 when the employee already has a non-cancelled
// @Description appointment overlapping the half-open window [startTime, endTime).
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body AppointmentRequest true "Appointment data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	appt, err := req.toModel()
	if err != nil {
		return badRequest(c, "invalid customerId")
	}
	if err := h.svc.Schedule(c.Request().Context(), appt); err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			return badRequest(c, err.Error())
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: appt})
}

// Update godoc
// @Summary Update or reschedule an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body AppointmentRequest true "Appointment data"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	update, err := req.toModel()
	if err != nil {
		return badRequest(c, "invalid customerId")
	}
	appt, err := h.svc.Update(c.Request().Context(), id, update)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWindow) {
			return badRequest(c, err.Error())
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: appt})
}

// Delete godoc
// @Summary Delete an appointment
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "appointment deleted"})
}
