package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, ErrInvalidCredentials.Error()},
		{"email taken", ErrEmailTaken, http.StatusConflict, ErrEmailTaken.Error()},
		{"scheduling conflict", ErrSchedulingConflict, http.StatusConflict, ErrSchedulingConflict.Error()},
		{"not found", ErrNotFound, http.StatusNotFound, ErrNotFound.Error()},
		{"demo disabled", ErrDemoDisabled, http.StatusNotFound, ErrDemoDisabled.Error()},
		{"wrapped sentinel", fmt.Errorf("lookup customer: %w", ErrNotFound), http.StatusNotFound, ErrNotFound.Error()},
		{"unknown error hides internals", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, httpErr.Message)
		})
	}
}

func TestMapErrorToHTTP_PassesHTTPErrorsThrough(t *testing.T) {
	in := NewHTTPError(http.StatusUnprocessableEntity, "invalid metadata", "field: status")

	out := MapErrorToHTTP(fmt.Errorf("content: %w", in))
	assert.Equal(t, in, out)

	resp := out.ToErrorResponse()
	assert.Equal(t, "invalid metadata", resp.Error)
	assert.Equal(t, []string{"field: status"}, resp.Details)
}
