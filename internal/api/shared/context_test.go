package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)

	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a UUID")
	assert.Empty(t, GetTraceID(ctx), "original context must be unchanged")

	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}
