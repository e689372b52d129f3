package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"crmhub/internal/model"
	"crmhub/internal/repository"
	"crmhub/internal/service"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	svc service.CustomerService
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// CustomerRequest is the create/update payload for a customer.
type CustomerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Status    string `json:"status" validate:"omitempty,oneof=lead active inactive"`
	Notes     string `json:"notes"`
}

func (r *CustomerRequest) toModel() *model.Customer {
	return &model.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Status:    r.Status,
		Notes:     r.Notes,
	}
}

// List godoc
// @Summary List customers
// @Tags customers
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Param search query string false "Search name, email or company"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.CustomerFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	customers, total, err := h.svc.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{
		Data: customers,
		Meta: Meta{Page: page, Limit: limit, Total: total},
	})
}

// Get godoc
// @Summary Get a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid customer id")
	}
	customer, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: customer})
}

// Create godoc
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CustomerRequest true "Customer data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	customer := req.toModel()
	if err := h.svc.Create(c.Request().Context(), customer); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: customer})
}

// Update godoc
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body CustomerRequest true "Customer data"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid customer id")
	}
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	customer, err := h.svc.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: customer})
}

// Delete godoc
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid customer id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "customer deleted"})
}
