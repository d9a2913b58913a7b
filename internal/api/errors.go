package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/threat-ingest/internal/domain"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrDuplicateTask),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err, naming the
// task where that helps.
func GetSafeErrorMessage(err error, taskName string) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, domain.ErrDuplicateTask):
		return fmt.Sprintf("Task '%s' already exists.", taskName)

	case errors.Is(err, domain.ErrTaskNotFound):
		return fmt.Sprintf("No data found for task '%s'.", taskName)

	case errors.Is(err, domain.ErrEmptyTaskName):
		return "Task name is required."

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator output into a short message that
// names the offending field by its JSON path.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldPath(fe.Namespace()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

var fieldNames = map[string]string{
	"ProviderA":    "provider_A",
	"ProviderB":    "provider_B",
	"YearFrom":     "year_from",
	"YearTo":       "year_to",
	"Countries":    "countries",
	"ThreatLevels": "threat_levels",
	"Severity":     "severity",
}

// jsonFieldPath converts "CreateTaskRequest.ProviderA.YearFrom" into
// "provider_A.year_from".
func jsonFieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if name, ok := fieldNames[p]; ok {
			parts[i] = name
		}
	}
	return strings.Join(parts, ".")
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
