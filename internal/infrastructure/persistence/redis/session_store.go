// Package redis provides the Redis-backed session store
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/forkfeed/forkfeed/internal/ports/outbound"
)

// SessionStore implements outbound.SessionStore on Redis. Sessions expire
// via key TTL; an absent key means unauthenticated.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis session store
func NewSessionStore(client *redis.Client) outbound.SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// Create stores a new session and returns its opaque id
func (s *SessionStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error) {
	sessionID := uuid.New().String()

	if err := s.client.Set(ctx, sessionKey(sessionID), userID.String(), ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return sessionID, nil
}

// Get resolves a session id to its user id
func (s *SessionStore) Get(ctx context.Context, sessionID string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return uuid.Nil, outbound.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, outbound.ErrNotFound
	}
	return userID, nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKey(sessionID)).Err()
}
