// README: Session store backed by Redis; one JSON value per session with a sliding TTL.
package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:%s"

type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	val, err := r.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Save refreshes the key's TTL on every write.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	val, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return r.redis.Set(ctx, sessionKey(s.ID), val, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.redis.Del(ctx, sessionKey(id)).Err()
}

// DeleteIdleBefore is a no-op; Redis expires idle sessions through the key TTL.
func (r *RedisStore) DeleteIdleBefore(context.Context, time.Time) (int, error) {
	return 0, nil
}

func sessionKey(id string) string {
	return fmt.Sprintf(sessionKeyPrefix, id)
}
