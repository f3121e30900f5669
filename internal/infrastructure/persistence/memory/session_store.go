// Package memory provides in-process implementations of infrastructure
// ports, used by tests and single-node deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

type sessionEntry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// SessionStore implements outbound.SessionStore with a mutex-guarded map.
// Expired entries are dropped lazily on read.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

// NewSessionStore creates a new in-memory session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]sessionEntry),
	}
}

// Create stores a new session and returns its opaque id
func (s *SessionStore) Create(_ context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	sessionID := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sessionEntry{
		userID:    userID,
		expiresAt: time.Now().Add(ttl),
	}
	return sessionID, nil
}

// Get resolves a session id to its user id
func (s *SessionStore) Get(_ context.Context, sessionID string) (uuid.UUID, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return uuid.Nil, outbound.ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return uuid.Nil, outbound.ErrNotFound
	}
	return entry.userID, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
