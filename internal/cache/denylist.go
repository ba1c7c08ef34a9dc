package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs until the tokens would have expired anyway.
// A Denylist without a Redis client accepts every token and ignores revocations.
type Denylist struct {
	client *redis.Client
}

// NewDenylist returns a Denylist backed by client, which may be nil.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Enabled reports whether revocations are persisted.
func (d *Denylist) Enabled() bool {
	return d != nil && d.client != nil
}

// Revoke marks jti as revoked for ttl. Non-positive ttls are ignored since the
// token has already expired.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !d.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, DenylistKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !d.Enabled() || jti == "" {
		return false, nil
	}
	n, err := d.client.Exists(ctx, DenylistKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
