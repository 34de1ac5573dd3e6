package repository

import (
	"context"
	"time"
)

// SessionStore registra sesiones revocadas (logout/refresh) hasta su expiración natural.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
