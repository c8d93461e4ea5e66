// Package appctx carries request-scoped values through context.Context.
package appctx

import (
	"context"

	"prepstock/internal/core/id"
)

type requestIDKey struct{}
type userIDKey struct{}

// WithRequestID stores the request id in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id, or "" if absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserID stores the authenticated user id in context.
func WithUserID(ctx context.Context, userID id.ID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user id, or the nil id if absent.
func UserID(ctx context.Context) id.ID {
	if v, ok := ctx.Value(userIDKey{}).(id.ID); ok {
		return v
	}
	return id.Nil()
}
