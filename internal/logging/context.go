package logging

import "context"

type contextKey string

const requestIDKey contextKey = "requestID"

// ContextWithRequestID stores the request identifier on ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext retrieves the request identifier from context.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if value, ok := ctx.Value(requestIDKey).(string); ok && value != "" {
		return value, true
	}
	return "", false
}
