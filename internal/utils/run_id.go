package utils

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}

// WithRunID tags ctx with a fresh run ID and returns both.
func WithRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return ContextWithRunID(ctx, id), id
}

// ContextWithRunID tags ctx with an existing correlation ID, such as the
// session ID of an authenticated request.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
