package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in redis with the TTL enforced server-side,
// so sessions survive API restarts.
type RedisStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, secret string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *RedisStore) Create(ctx context.Context, userID int) (string, error) {
	raw := uuid.NewString()

	err := s.client.Set(ctx, keyPrefix+hashToken(s.secret, raw), userID, s.ttl).Err()

	if err != nil {
		return "", err
	}

	return raw, nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (int, error) {
	val, err := s.client.Get(ctx, keyPrefix+hashToken(s.secret, token)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}

		return 0, err
	}

	userID, err := strconv.Atoi(val)

	if err != nil {
		// corrupt entry; treat as absent
		return 0, ErrNoSession
	}

	return userID, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+hashToken(s.secret, token)).Err()
}
