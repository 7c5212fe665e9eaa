// Package ctxutil carries per-call metadata for outbound portal requests.
package ctxutil

import "context"

type ctxKey int

const (
	requestIDKey ctxKey = iota
	originKey
)

// WithRequestID tags outbound calls made with ctx with a correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx returns the correlation id, or "" when none was set.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithOrigin records which component issued the calls made with ctx, for
// example "poll.complaints". An empty origin leaves ctx unchanged.
func WithOrigin(ctx context.Context, origin string) context.Context {
	if origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originKey, origin)
}

// OriginFromCtx returns the recorded origin, or "" when none was set.
func OriginFromCtx(ctx context.Context) string {
	o, _ := ctx.Value(originKey).(string)
	return o
}
