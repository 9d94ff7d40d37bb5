package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const tokenKeyPrefix = "admin_token:"

// TokenCache caches the last-issued admin token keyed by username, with a TTL
// matching the token's own expiry so stale entries age out on their own.
type TokenCache interface {
	Set(ctx context.Context, username, token string, ttl time.Duration) error
	Get(ctx context.Context, username string) (string, error)
}

// ErrCacheMiss is returned when no token is cached for the username.
var ErrCacheMiss = redis.Nil

type tokenCache struct {
	client *redis.Client
}

// NewTokenCache returns a Redis-backed implementation.
func NewTokenCache(client *redis.Client) TokenCache {
	return &tokenCache{client: client}
}

func (c *tokenCache) Set(ctx context.Context, username, token string, ttl time.Duration) error {
	return c.client.Set(ctx, tokenKeyPrefix+username, token, ttl).Err()
}

func (c *tokenCache) Get(ctx context.Context, username string) (string, error) {
	return c.client.Get(ctx, tokenKeyPrefix+username).Result()
}
