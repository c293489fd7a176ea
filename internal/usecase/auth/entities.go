package auth

import (
	"context"
	"time"

	"familyledger/internal/domain/user"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionDTO struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      user.Principal `json:"user"`
}

// SessionStore maps opaque tokens to principals. Get returns
// user.ErrUnauthenticated for unknown or expired tokens.
type SessionStore interface {
	Save(ctx context.Context, token string, p user.Principal, ttl time.Duration) error
	Get(ctx context.Context, token string) (user.Principal, error)
	Delete(ctx context.Context, token string) error
}
