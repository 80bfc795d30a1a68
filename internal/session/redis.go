package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/mkarlsen/noteservice/internal/apperr"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so they survive restarts and are
// shared across instances. TTL is enforced by Redis key expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Create(ctx context.Context, userID int) (string, error) {
	token := uuid.NewString()
	err := r.client.Set(ctx, redisKeyPrefix+token, strconv.Itoa(userID), r.ttl).Err()
	if err != nil {
		return "", apperr.Transient("session store unavailable", err)
	}
	return token, nil
}

func (r *RedisStore) Get(ctx context.Context, token string) (int, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.Unauthenticated("not authenticated")
		}
		return 0, apperr.Transient("session store unavailable", err)
	}
	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, apperr.Internal("corrupt session record", err)
	}
	return userID, nil
}

func (r *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return apperr.Transient("session store unavailable", err)
	}
	return nil
}
