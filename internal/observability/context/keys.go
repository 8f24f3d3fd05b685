package context

import "context"

type contextKey string

const (
	requestIDKey contextKey = "observability_request_id"
	storeIDKey   contextKey = "observability_store_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

func WithStoreID(ctx context.Context, storeID string) context.Context {
	if ctx == nil || storeID == "" {
		return ctx
	}
	return context.WithValue(ctx, storeIDKey, storeID)
}

func StoreIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(storeIDKey).(string)
	return value
}
