package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/threat-ingest/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		data         interface{}
		expectedBody string
	}{
		{
			name:         "object",
			status:       http.StatusOK,
			data:         map[string]interface{}{"task_name": "alpha"},
			expectedBody: `{"task_name":"alpha"}`,
		},
		{
			name:         "empty list",
			status:       http.StatusOK,
			data:         []string{},
			expectedBody: `[]`,
		},
		{
			name:         "nil response",
			status:       http.StatusOK,
			data:         nil,
			expectedBody: `null`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			RespondWithJSON(w, req, tc.status, tc.data)

			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestRespondWithErrorAndLog(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	ctx := WithTraceID(context.Background(), "trace-123")
	ctx = logger.WithLogger(ctx, log)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/get_task/alpha", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("connect postgres://admin:hunter2@db:5432/threats failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An unexpected error occurred", body.Detail)
	assert.Equal(t, "trace-123", body.TraceID)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, "trace-123", entries[0]["trace_id"])
	assert.NotContains(t, entries[0]["error"], "hunter2")
}

func TestRespondWithError_ClientErrorLoggedAtDebug(t *testing.T) {
	buf, log := logger.SetupTestLogger(t)

	req := httptest.NewRequest(http.MethodGet, "/x", nil).
		WithContext(logger.WithLogger(context.Background(), log))
	w := httptest.NewRecorder()

	RespondWithError(w, req, http.StatusNotFound, "No data found for task 'x'.")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"No data found for task 'x'."}`, w.Body.String())

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0]["level"])
}
