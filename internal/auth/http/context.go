// Package http provides HTTP middleware and handlers for authentication.
package http

import (
	"context"

	userDomain "github.com/allisson/taskhub/internal/user/domain"
)

// Actor identifies the authenticated caller of a request.
type Actor struct {
	UserID userDomain.UserID
	Email  string
}

// actorKey is a context key type for storing the authenticated actor.
type actorKey struct{}

// WithActor stores the authenticated actor in the context.
// This is called by the authentication middleware after successful token validation.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor retrieves the authenticated actor from the context.
// Returns (actor, true) if present, or (nil, false) if no actor was set.
func GetActor(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*Actor)
	return actor, ok
}
