// Package redis implementa la lista de sesiones revocadas sobre Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/donepaid-api/internal/domain/repository"
	"github.com/jhoicas/donepaid-api/pkg/config"
)

var _ repository.SessionStore = (*SessionStore)(nil)

const revokedPrefix = "donepaid:session:revoked:"

// SessionStore guarda cada jti revocado como clave con TTL igual a la vida restante del token.
type SessionStore struct {
	rdb *goredis.Client
}

// NewClient crea el cliente y verifica la conexión.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// NewSessionStore construye el adaptador.
func NewSessionStore(rdb *goredis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Revoke marca la sesión como revocada durante ttl.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, revokedPrefix+sessionID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

// IsRevoked consulta la clave; su ausencia (redis.Nil) significa sesión vigente.
func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := s.rdb.Get(ctx, revokedPrefix+sessionID).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis is revoked: %w", err)
	}
	return true, nil
}
