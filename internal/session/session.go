// Package session implements the server-side session store backing the
// authentication gate. Tokens are opaque UUIDs; the identity they map to
// lives in Redis with a TTL, so expiry needs no background sweeper.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"example.com/acgl/services/inventory/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a token has no live session, either because
// it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Identity is the authenticated user attached to a session.
type Identity struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
	FullName string `json:"full_name"`
}

// Store persists sessions between requests.
type Store interface {
	Create(ctx context.Context, identity Identity) (string, error)
	Get(ctx context.Context, token string) (*Identity, error)
	Delete(ctx context.Context, token string) error
	Close() error
}

// redisStore implements Store on Redis.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and returns a session store whose entries
// expire after ttl.
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *redisStore) Create(ctx context.Context, identity Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisStore) Get(ctx context.Context, token string) (*Identity, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
