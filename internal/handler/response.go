package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "crmhub/internal/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// DataResponse wraps a single result.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// Meta carries pagination info for ORM-backed listings.
type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// ListResponse wraps a page of results.
type ListResponse struct {
	Data interface{} `json:"data"`
	Meta Meta        `json:"meta"`
}

// ContentListResponse wraps CMS-backed listings, which paginate by limit/skip.
type ContentListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
	Limit int         `json:"limit"`
	Skip  int         `json:"skip"`
}

// pageParams reads page/limit pagination for ORM-backed resources.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// limitSkip reads limit/skip pagination for CMS-backed resources.
func limitSkip(c echo.Context) (limit, skip int) {
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// fail maps a domain error to its JSON error response.
func fail(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// badRequest answers a 400 with a single message.
func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{Error: message})
}

// validationFailed turns validator errors into the 400 {error, details} shape.
func validationFailed(c echo.Context, err error) error {
	details := []string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	} else {
		details = append(details, err.Error())
	}
	return c.JSON(http.StatusBadRequest, apperrors.ErrorResponse{
		Error:   "validation failed",
		Details: details,
	})
}
