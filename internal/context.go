package internal

import (
	"context"
	"time"
)

type ctxKey string

const (
	ContextActorKey ctxKey = "actor"
	ContextUserKey  ctxKey = "user"
)

// AuthUser is the authenticated principal carried through the request
// context. It lives here so transport middleware and domain handlers can
// share it without importing each other.
type AuthUser struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*AuthUser)
	return user, ok && user != nil
}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// ActorFromContext returns the display name of the acting user, or "" when
// the request carries no authenticated actor.
func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if actor, ok := ctx.Value(ContextActorKey).(string); ok {
		return actor
	}
	return ""
}

func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
