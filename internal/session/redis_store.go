package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore parses a redis:// URL and verifies the connection.
func NewRedisStore(redisURL, password string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(rdb, ttl), nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func sessionKey(id string) string {
	return keyPrefix + id
}

// Create stores a new session and returns its id.
func (s *RedisStore) Create(ctx context.Context, user SessionUser) (string, error) {
	id := uuid.NewString()
	key := sessionKey(id)

	fields := map[string]any{
		"user_id":    user.ID,
		"username":   user.Username,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*SessionUser, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	fields, err := s.client.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	// HGETALL on a missing key returns an empty map
	if len(fields) == 0 || fields["user_id"] == "" {
		return nil, ErrSessionNotFound
	}
	return &SessionUser{
		ID:       fields["user_id"],
		Username: fields["username"],
	}, nil
}

// Touch slides the expiry forward.
func (s *RedisStore) Touch(ctx context.Context, id string) error {
	ok, err := s.client.Expire(ctx, sessionKey(id), s.ttl).Result()
	if err != nil {
		return fmt.Errorf("touch session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping reports whether redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
