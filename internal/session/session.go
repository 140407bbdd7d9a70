// Package session holds the server-side session table: opaque tokens bound to
// one owner email with a fixed expiry stamped at issuance. An expired session
// is indistinguishable from an absent one.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL matches the 7-day session lifetime of the web app.
const DefaultTTL = 7 * 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Store issues and validates opaque session tokens.
type Store interface {
	Create(ctx context.Context, email string) (string, error)
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type memoryRecord struct {
	email     string
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process session table. Expiry is checked
// lazily on Get; there is no background sweep.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryRecord
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryRecord),
		ttl:      ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context, email string) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryRecord{
		email:     email,
		expiresAt: time.Now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[token]
	if !ok {
		return "", ErrNotFound
	}
	if !time.Now().Before(rec.expiresAt) {
		delete(s.sessions, token)
		return "", ErrNotFound
	}
	return rec.email, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[token]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, token)
	return nil
}
