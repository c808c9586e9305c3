package common

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID tags ctx with the id the gRPC interceptor assigned to the call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns "" outside a request.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
