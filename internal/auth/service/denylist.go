package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked_token:"

// NoOpDenylist makes logout best-effort: tokens stay valid until they expire.
type NoOpDenylist struct{}

// NewNoOpDenylist creates a Denylist that never revokes.
func NewNoOpDenylist() Denylist {
	return NoOpDenylist{}
}

func (NoOpDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return nil
}

func (NoOpDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return false, nil
}

// redisCommander is the subset of *redis.Client used by RedisDenylist.
type redisCommander interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisDenylist stores revoked token ids until the token would have expired.
type RedisDenylist struct {
	client redisCommander
	now    func() time.Time
}

// NewRedisDenylist creates a Denylist backed by Redis.
func NewRedisDenylist(client redisCommander) *RedisDenylist {
	return &RedisDenylist{client: client, now: time.Now}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}

	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}

	if err := d.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := d.client.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
