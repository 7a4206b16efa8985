package logging

import "context"

type contextKey string

const (
	toastIDKey   contextKey = "toast_id"
	operationKey contextKey = "operation"
)

// WithToastID adds a toast ID to the context.
func WithToastID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, toastIDKey, id)
}

// WithOperation adds an operation label to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetToastID retrieves the toast ID from the context.
// Returns empty string if not present.
func GetToastID(ctx context.Context) string {
	if id, ok := ctx.Value(toastIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOperation retrieves the operation label from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}
