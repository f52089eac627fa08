package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Codelizard/HeroesOfCordan/pkg/state"
	"github.com/Codelizard/HeroesOfCordan/pkg/storage"
)

// Session operations (Redis-backed)

func sessionKey(key storage.SessionKey) string {
	return sessionPrefix + key.String()
}

func (r *RedisStorage) SaveSession(ctx context.Context, key storage.SessionKey, s *state.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "session", key.String(), "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	cmd := r.client.Set(ctx, sessionKey(key), data, r.ttl)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save session", "session", key.String(), "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, key storage.SessionKey) (*state.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session not found", "session", key.String())
			return nil, nil
		}
		r.logger.Error("Failed to load session", "session", key.String(), "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s state.Session
	if err := json.Unmarshal(data, &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "session", key.String(), "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, key storage.SessionKey) error {
	cmd := r.client.Del(ctx, sessionKey(key))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete session", "session", key.String(), "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
