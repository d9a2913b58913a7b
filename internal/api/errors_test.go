package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", domain.ErrTaskNotFound), http.StatusNotFound},
		{"duplicate", domain.ErrDuplicateTask, http.StatusBadRequest},
		{"validation", domain.ValidateTaskName(""), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task 'a' already exists.", GetSafeErrorMessage(domain.ErrDuplicateTask, "a"))
	assert.Equal(t, "No data found for task 'b'.", GetSafeErrorMessage(domain.ErrTaskNotFound, "b"))
	assert.Equal(t, "Task name is required.", GetSafeErrorMessage(domain.ValidateTaskName(""), ""))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(errors.New("secret"), "c"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil, "c"))
}

func TestJSONFieldPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "provider_A.year_from", jsonFieldPath("CreateTaskRequest.ProviderA.YearFrom"))
	assert.Equal(t, "provider_B", jsonFieldPath("CreateTaskRequest.ProviderB"))
}

func TestSanitizeValidationError_NonValidatorError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
