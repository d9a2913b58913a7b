package api

import "github.com/phrazzld/threat-ingest/internal/domain"

// ProviderFilterRequest is the JSON form of a per-provider filter. Year
// bounds and the country list are mandatory; an empty country list is
// allowed and selects nothing.
type ProviderFilterRequest struct {
	YearFrom     *int     `json:"year_from"     validate:"required"`
	YearTo       *int     `json:"year_to"       validate:"required"`
	Countries    []string `json:"countries"     validate:"required"`
	ThreatLevels []int    `json:"threat_levels"`
	Severity     []int    `json:"severity"`
}

// CreateTaskRequest is the body of POST /api/v1/create_task/{name}.
type CreateTaskRequest struct {
	ProviderA *ProviderFilterRequest `json:"provider_A" validate:"required"`
	ProviderB *ProviderFilterRequest `json:"provider_B" validate:"required"`
}

// CreateTaskResponse acknowledges an accepted submission.
type CreateTaskResponse struct {
	TaskName string `json:"task_name"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// TaskStatusResponse reports the current status of a task.
type TaskStatusResponse struct {
	TaskName string `json:"task_name"`
	Status   string `json:"status"`
}

func (p *ProviderFilterRequest) toDomain() domain.ProviderFilter {
	return domain.ProviderFilter{
		YearFrom:     *p.YearFrom,
		YearTo:       *p.YearTo,
		Countries:    p.Countries,
		ThreatLevels: p.ThreatLevels,
		Severity:     p.Severity,
	}
}

func (r *CreateTaskRequest) toDomain() domain.TaskFilterRequest {
	return domain.TaskFilterRequest{
		ProviderA: r.ProviderA.toDomain(),
		ProviderB: r.ProviderB.toDomain(),
	}
}
