package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"crmhub/internal/cms"
	apperrors "crmhub/internal/errors"
	"crmhub/internal/service"
)

// ContentResource describes one CMS-backed collection: its route segment,
// the object type in the bucket, and the metadata keys clients may filter on.
type ContentResource struct {
	Path    string
	Type    string
	Filters []string
}

// ContentResources is the full set of CMS-backed collections the dashboard
// manages. Filter keys mirror the metadata each object type carries.
var ContentResources = []ContentResource{
	{Path: "contacts", Type: "contacts", Filters: []string{"type", "status"}},
	{Path: "companies", Type: "companies", Filters: []string{"industry", "status"}},
	{Path: "deals", Type: "deals", Filters: []string{"stage", "status"}},
	{Path: "activities", Type: "activities", Filters: []string{"type"}},
	{Path: "employees", Type: "employees", Filters: []string{"department", "status"}},
	{Path: "locations", Type: "locations", Filters: []string{"status"}},
	{Path: "reports", Type: "reports", Filters: []string{"type"}},
	{Path: "services-products", Type: "services-products", Filters: []string{"category", "status"}},
}

// ContentHandler serves one CMS-backed collection. All collections share the
// same handler; the bound ContentResource decides type and filters.
type ContentHandler struct {
	svc service.ContentService
	res ContentResource
}

// NewContentHandler creates a handler for one content resource.
func NewContentHandler(svc service.ContentService, res ContentResource) *ContentHandler {
	return &ContentHandler{svc: svc, res: res}
}

// ContentRequest is the create payload for a content object.
type ContentRequest struct {
	Title    string                 `json:"title" validate:"required"`
	Slug     string                 `json:"slug"`
	Metadata map[string]interface{} `json:"metadata"`
}

// ContentPatchRequest is the partial-update payload for a content object.
type ContentPatchRequest struct {
	Title    string                 `json:"title"`
	Metadata map[string]interface{} `json:"metadata"`
}

// List serves GET /api/{resource} with limit/skip pagination and the
// resource's allowed metadata filters.
func (h *ContentHandler) List(c echo.Context) error {
	limit, skip := limitSkip(c)
	q := cms.Query{
		Type:  h.res.Type,
		Limit: limit,
		Skip:  skip,
	}
	for _, key := range h.res.Filters {
		if val := c.QueryParam(key); val != "" {
			if q.Metadata == nil {
				q.Metadata = map[string]string{}
			}
			q.Metadata[key] = val
		}
	}

	objects, total, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ContentListResponse{
		Data:  objects,
		Total: total,
		Limit: limit,
		Skip:  skip,
	})
}

// Get serves GET /api/{resource}/{id}. A missing object, or an object of a
// different type, is a 404.
func (h *ContentHandler) Get(c echo.Context) error {
	object, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if object == nil || object.Type != h.res.Type {
		return fail(c, apperrors.ErrNotFound)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: object})
}

// Create serves POST /api/{resource}.
func (h *ContentHandler) Create(c echo.Context) error {
	var req ContentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}

	object, err := h.svc.Create(c.Request().Context(), cms.ObjectDraft{
		Title:    req.Title,
		Type:     h.res.Type,
		Slug:     req.Slug,
		Metadata: req.Metadata,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: object})
}

// Update serves PATCH /api/{resource}/{id}.
func (h *ContentHandler) Update(c echo.Context) error {
	id := c.Param("id")

	current, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if current == nil || current.Type != h.res.Type {
		return fail(c, apperrors.ErrNotFound)
	}

	var req ContentPatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	object, err := h.svc.Update(c.Request().Context(), id, cms.ObjectPatch{
		Title:    req.Title,
		Metadata: req.Metadata,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: object})
}

// Delete serves DELETE /api/{resource}/{id}.
func (h *ContentHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	current, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	if current == nil || current.Type != h.res.Type {
		return fail(c, apperrors.ErrNotFound)
	}

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": h.res.Type + " deleted"})
}

// SettingsHandler serves the singleton settings object.
type SettingsHandler struct {
	svc service.ContentService
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(svc service.ContentService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get godoc
// @Summary Get workspace settings
// @Tags settings
// @Produce json
// @Success 200 {object} DataResponse
// @Router /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	settings, err := h.svc.GetSettings(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: settings})
}

// Update godoc
// @Summary Update workspace settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body ContentPatchRequest true "Settings patch"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	var req ContentPatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	settings, err := h.svc.UpdateSettings(c.Request().Context(), cms.ObjectPatch{
		Title:    req.Title,
		Metadata: req.Metadata,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: settings})
}
