package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"crmhub/internal/model"
	"crmhub/internal/repository"
	"crmhub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	svc service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// TaskRequest is the create/update payload for a task.
type TaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssigneeID  string     `json:"assigneeId"`
	CustomerID  string     `json:"customerId" validate:"omitempty,uuid"`
}

func (r *TaskRequest) toModel() *model.Task {
	task := &model.Task{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
		DueDate:     r.DueDate,
		AssigneeID:  r.AssigneeID,
	}
	if r.CustomerID != "" {
		if id, err := uuid.Parse(r.CustomerID); err == nil {
			task.CustomerID = &id
		}
	}
	return task
}

// List godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Filter by status"
// @Param assigneeId query string false "Filter by assignee"
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	page, limit := pageParams(c)
	filter := repository.TaskFilter{
		Status:     c.QueryParam("status"),
		AssigneeID: c.QueryParam("assigneeId"),
	}

	tasks, total, err := h.svc.List(c.Request().Context(), filter, page, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ListResponse{
		Data: tasks,
		Meta: Meta{Page: page, Limit: limit, Total: total},
	})
}

// Get godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}
	task, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: task})
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	task := req.toModel()
	if err := h.svc.Create(c.Request().Context(), task); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: task})
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "Task data"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	task, err := h.svc.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: task})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid task id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "task deleted"})
}
