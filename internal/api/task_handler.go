package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/threat-ingest/internal/api/shared"
	"github.com/phrazzld/threat-ingest/internal/domain"
	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/phrazzld/threat-ingest/internal/service"
)

// EnqueuedMessage is returned with every accepted submission.
const EnqueuedMessage = "Task has been added to the queue."

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /api/v1/create_task/{name}.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := logger.FromContext(r.Context()).With(slog.String("task_name", name))

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.taskService.CreateTask(r.Context(), name, req.toDomain()); err != nil {
		h.respondWithServiceError(w, r, name, err)
		return
	}

	log.Info("task accepted")
	shared.RespondWithJSON(w, r, http.StatusOK, CreateTaskResponse{
		TaskName: name,
		Status:   string(domain.TaskStatusEnqueued),
		Message:  EnqueuedMessage,
	})
}

// GetTaskNames handles GET /api/v1/get_task_names.
func (h *TaskHandler) GetTaskNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.taskService.ListTaskNames(r.Context())
	if err != nil {
		h.respondWithServiceError(w, r, "", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, names)
}

// GetTask handles GET /api/v1/get_task/{task_name}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "task_name")

	records, err := h.taskService.GetTaskRecords(r.Context(), name)
	if err != nil {
		h.respondWithServiceError(w, r, name, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// GetTaskStatus handles GET /api/v1/get_task_status/{task_name}.
func (h *TaskHandler) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "task_name")

	status, err := h.taskService.GetTaskStatus(r.Context(), name)
	if err != nil {
		h.respondWithServiceError(w, r, name, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, TaskStatusResponse{
		TaskName: name,
		Status:   string(status),
	})
}

func (h *TaskHandler) respondWithServiceError(w http.ResponseWriter, r *http.Request, name string, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err, name), err)
}
