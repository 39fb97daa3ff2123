package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bulky/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWT tokens before their natural expiry,
// used on logout and forced session revocation.
type TokenBlacklist interface {
	// Revoke adds a token's JTI to the blacklist for the remaining token lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error

	// IsRevoked checks if a token's JTI has been blacklisted
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// RevokeAccount invalidates every token of an account issued up to now
	RevokeAccount(ctx context.Context, accountID string, ttl time.Duration) error

	// IsAccountRevoked reports whether a token issued at the given time
	// falls under an account-wide revocation
	IsAccountRevoked(ctx context.Context, accountID string, tokenIssuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisTokenBlacklist creates a Redis-backed token blacklist
func NewRedisTokenBlacklist(cfg config.RedisConfig) (*RedisTokenBlacklist, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 3,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis for token blacklist: %w", err)
	}

	return &RedisTokenBlacklist{
		client:    client,
		keyPrefix: "token:blacklist:",
	}, nil
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string {
	return b.keyPrefix + "jti:" + jti
}

func (b *RedisTokenBlacklist) accountKey(accountID string) string {
	return b.keyPrefix + "account:" + accountID
}

// Revoke adds a token's JTI to the blacklist
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsRevoked checks if a token's JTI is in the blacklist
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// RevokeAccount stores the revocation timestamp for an account. Tokens
// issued at or before this timestamp are rejected.
func (b *RedisTokenBlacklist) RevokeAccount(ctx context.Context, accountID string, ttl time.Duration) error {
	now := time.Now().Unix()
	if err := b.client.Set(ctx, b.accountKey(accountID), now, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke account tokens: %w", err)
	}
	return nil
}

// IsAccountRevoked checks a token's issue time against the account's
// revocation timestamp
func (b *RedisTokenBlacklist) IsAccountRevoked(ctx context.Context, accountID string, tokenIssuedAt time.Time) (bool, error) {
	val, err := b.client.Get(ctx, b.accountKey(accountID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check account revocation: %w", err)
	}

	revokedAt, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse revocation timestamp: %w", err)
	}

	return tokenIssuedAt.Unix() <= revokedAt, nil
}

// Close closes the Redis client
func (b *RedisTokenBlacklist) Close() error {
	return b.client.Close()
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// InMemoryTokenBlacklist is a single-process fallback used in tests and
// when Redis is not configured.
type InMemoryTokenBlacklist struct {
	mu        sync.RWMutex
	jtis      map[string]time.Time // JTI -> blacklist entry expiry
	revokedAt map[string]time.Time // accountID -> revocation time
}

// NewInMemoryTokenBlacklist creates a new in-memory token blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		jtis:      make(map[string]time.Time),
		revokedAt: make(map[string]time.Time),
	}
}

// Revoke adds a token's JTI to the in-memory blacklist
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.jtis[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked checks if a token's JTI is blacklisted and not yet expired
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	expiry, exists := b.jtis[jti]
	if !exists {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(b.jtis, jti)
		return false, nil
	}
	return true, nil
}

// RevokeAccount invalidates all tokens for an account
func (b *InMemoryTokenBlacklist) RevokeAccount(_ context.Context, accountID string, _ time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revokedAt[accountID] = time.Now()
	return nil
}

// IsAccountRevoked checks a token's issue time against the account's
// revocation time
func (b *InMemoryTokenBlacklist) IsAccountRevoked(_ context.Context, accountID string, tokenIssuedAt time.Time) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	revoked, exists := b.revokedAt[accountID]
	if !exists {
		return false, nil
	}
	return tokenIssuedAt.UnixNano() <= revoked.UnixNano(), nil
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
