package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// principal is the authenticated caller carried on the request context.
type principal struct {
	userID uuid.UUID
	role   string
}

func principalFrom(ctx context.Context) (principal, bool) {
	p, ok := ctx.Value(contextKey{}).(principal)
	if !ok || p.userID == uuid.Nil {
		return principal{}, false
	}
	return p, true
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	p, ok := principalFrom(ctx)
	return p.userID, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	p, ok := principalFrom(ctx)
	return p.role, ok
}

// SetUserContext stores the token subject and role for downstream handlers.
func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	return context.WithValue(ctx, contextKey{}, principal{userID: userID, role: role})
}
