package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 24 * time.Hour

// SessionStore keeps one Redis hash per visitor session. The hash lives under
// session:<id> and expires TTL after its last write, so abandoned sessions
// (and their carts) age out on their own.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// If ttl <= 0, defaultSessionTTL is used.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	value, err := s.client.HGet(ctx, s.key(sessionID), key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("session get: %w", err)
	}
	return value, true, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID, key, value string) error {
	name := s.key(sessionID)
	if err := s.client.HSet(ctx, name, key, value).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	if err := s.client.Expire(ctx, name, s.ttl).Err(); err != nil {
		return fmt.Errorf("session expire: %w", err)
	}
	return nil
}

func (s *SessionStore) Unset(ctx context.Context, sessionID, key string) error {
	if err := s.client.HDel(ctx, s.key(sessionID), key).Err(); err != nil {
		return fmt.Errorf("session unset: %w", err)
	}
	return nil
}

// Rotate renames the session hash so all stored data survives the identifier
// change. Rotating a session that has no data yet is a no-op.
func (s *SessionStore) Rotate(ctx context.Context, oldID, newID string) error {
	err := s.client.Rename(ctx, s.key(oldID), s.key(newID)).Err()
	if err != nil {
		if strings.Contains(err.Error(), "no such key") {
			return nil
		}
		return fmt.Errorf("session rotate: %w", err)
	}
	if err := s.client.Expire(ctx, s.key(newID), s.ttl).Err(); err != nil {
		return fmt.Errorf("session expire: %w", err)
	}
	return nil
}

func (s *SessionStore) Destroy(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sessionID string) string {
	return "session:" + sessionID
}
