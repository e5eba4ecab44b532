package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// RedisTokenDenylist stores revoked token ids with a TTL equal to the token's remaining lifetime.
type RedisTokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisTokenDenylist wraps a go-redis client.
func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{client: client, now: time.Now}
}

// Revoke denylists tokenID until the given time. Already-expired tokens are skipped.
func (d *RedisTokenDenylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, revokedTokenPrefix+tokenID, 1, ttl).Err()
}

// IsRevoked reports whether tokenID is denylisted.
func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := d.client.Get(ctx, revokedTokenPrefix+tokenID).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, err
	}
}
