// Package memory implementa puertos en proceso para desarrollo y tests (sin Redis).
package memory

import (
	"context"
	"sync"
	"time"
)

// SessionStore registro de sesiones revocadas en memoria. Las entradas vencidas se purgan al consultar.
type SessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewSessionStore crea un almacén vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marca la sesión como revocada durante ttl.
func (s *SessionStore) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[sessionID] = s.now().Add(ttl)
	return nil
}

// IsRevoked informa si la sesión sigue revocada.
func (s *SessionStore) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[sessionID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, sessionID)
		return false, nil
	}
	return true, nil
}
