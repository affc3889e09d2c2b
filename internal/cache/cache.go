// Package cache holds the key/value store behind dashboard caching and the
// access token blacklist.
package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// Get decodes the value under key into dest. The bool is false on a miss.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TokenBlacklist tracks revoked access tokens by JWT ID.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Store is a Cache that also serves as the token blacklist.
type Store interface {
	Cache
	TokenBlacklist
	Close() error
}

const blacklistPrefix = "token:blacklist:"
