package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-scientist/brandson/app/models"
	"github.com/redis/go-redis/v9"
)

const redisCartPrefix = "cart:"

type redisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartStore keeps carts as JSON strings under "cart:<key>". Every save
// refreshes the expiry; a ttl of zero keeps carts forever.
func NewRedisCartStore(client *redis.Client, ttl time.Duration) CartStore {
	return &redisCartStore{client: client, ttl: ttl}
}

func (s *redisCartStore) Load(ctx context.Context, key string) (*models.CartState, error) {
	payload, err := s.client.Get(ctx, redisCartPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %q: %w", key, err)
	}
	return decodeCart(key, payload)
}

func (s *redisCartStore) Save(ctx context.Context, key string, state models.CartState) error {
	payload, err := encodeCart(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisCartPrefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("save cart %q: %w", key, err)
	}
	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, redisCartPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete cart %q: %w", key, err)
	}
	return nil
}
