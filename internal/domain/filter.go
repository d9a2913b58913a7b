package domain

import "fmt"

// ProviderFilter constrains which raw rows of one provider are retained.
// Year bounds are inclusive. A nil or empty level set disables filtering
// on that axis; an empty country set retains nothing.
type ProviderFilter struct {
	YearFrom  int      `json:"year_from"`
	YearTo    int      `json:"year_to"`
	Countries []string `json:"countries"`
	// ThreatLevels applies to provider A rows.
	ThreatLevels []int `json:"threat_levels,omitempty"`
	// Severity applies to provider B rows.
	Severity []int `json:"severity,omitempty"`
}

// TaskFilterRequest pairs the filters for both providers.
// It is treated as immutable once a task has been enqueued.
type TaskFilterRequest struct {
	ProviderA ProviderFilter `json:"provider_A"`
	ProviderB ProviderFilter `json:"provider_B"`
}

// Clone returns a deep copy so callers cannot mutate an enqueued request.
func (r TaskFilterRequest) Clone() TaskFilterRequest {
	return TaskFilterRequest{
		ProviderA: r.ProviderA.clone(),
		ProviderB: r.ProviderB.clone(),
	}
}

func (f ProviderFilter) clone() ProviderFilter {
	out := f
	out.Countries = cloneSlice(f.Countries)
	out.ThreatLevels = cloneSlice(f.ThreatLevels)
	out.Severity = cloneSlice(f.Severity)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// ValidateTaskName checks that a task name can be used as a key.
func ValidateTaskName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTaskName)
	}
	return nil
}
