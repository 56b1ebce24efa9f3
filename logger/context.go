package logger

import "context"

// contextKey is an unexported type for context keys to avoid collisions.
type contextKey string

const (
	traceIDKey   contextKey = FieldTraceID
	spanIDKey    contextKey = FieldSpanID
	requestIDKey contextKey = FieldRequestID
)

// ContextWithRequestID stores a request id picked up by WithContext.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// ContextWithTrace stores trace and span ids picked up by WithContext.
func ContextWithTrace(ctx context.Context, traceID, spanID string) context.Context {
	ctx = context.WithValue(ctx, traceIDKey, traceID)
	return context.WithValue(ctx, spanIDKey, spanID)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
