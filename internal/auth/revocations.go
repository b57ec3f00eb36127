package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRevocations tracks ended sessions in Redis. Keys expire alongside the
// token so the set stays bounded.
type RedisRevocations struct {
	client *redis.Client
}

// NewRedisRevocations creates a revocation store.
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client}
}

func revocationKey(token string) string {
	return "clubsite:revoked:" + token
}

// Revoke marks a session token as ended until it would have expired anyway.
func (r *RedisRevocations) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKey(token), "1", ttl).Err()
}

// IsRevoked reports whether a session token was ended early.
func (r *RedisRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
