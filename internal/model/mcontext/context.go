package mcontext

import "context"

type contextKey string

const (
	ipKey        contextKey = "ip"
	requestIDKey contextKey = "request_id"
)

// WithIP sets the IP address in the context
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipKey, ip)
}

// GetIP retrieves the IP address from the context
func GetIP(ctx context.Context) string {
	val, ok := ctx.Value(ipKey).(string)
	if ok {
		return val
	}
	return ""
}

// WithRequestID sets the request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	val, ok := ctx.Value(requestIDKey).(string)
	if ok {
		return val
	}
	return ""
}
