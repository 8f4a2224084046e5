package contextutil

import "context"

// Unexported key type so the value cannot collide with other packages.
type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID injects the request ID into the context (also handy in tests).
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

// GetRequestID returns the request ID from the context, or "" when absent.
// Propagation is expected to happen in the RequestID middleware.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// GetKey exposes the raw key name for middleware that mirrors the value
// into the gin context.
func GetKey() string {
	return string(requestIDKey)
}
