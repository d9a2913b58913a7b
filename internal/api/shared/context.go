package shared

import (
	"context"

	"github.com/google/uuid"
)

// ContextKey is the type for request-scoped values set by this package.
type ContextKey string

// TraceIDKey is the key for the trace ID in the request context.
const TraceIDKey ContextKey = "traceID"

// SetTraceID returns a copy of ctx carrying a new random trace ID.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, uuid.NewString())
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
