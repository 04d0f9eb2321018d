package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	appbilling "github.com/plantlease/backend/internal/application/billing"
	"github.com/plantlease/backend/internal/domain/shared"
	"github.com/plantlease/backend/internal/infrastructure/config"
)

// RedisBalanceCache implements the billing BalanceCache using Redis.
// Suitable for deployments where multiple instances serve balance reads.
type RedisBalanceCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisBalanceCache creates a new Redis-backed balance cache
func NewRedisBalanceCache(cfg config.RedisConfig) (*RedisBalanceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBalanceCache{
		client:    client,
		keyPrefix: "billing:balance:",
		ttl:       cfg.TTL,
	}, nil
}

// NewRedisBalanceCacheWithClient creates a cache with an existing Redis
// client, useful for testing or when sharing a client across components.
func NewRedisBalanceCacheWithClient(client *redis.Client, ttl time.Duration) *RedisBalanceCache {
	return &RedisBalanceCache{
		client:    client,
		keyPrefix: "billing:balance:",
		ttl:       ttl,
	}
}

func (c *RedisBalanceCache) key(invoiceID uuid.UUID) string {
	return c.keyPrefix + invoiceID.String()
}

// Get returns the cached balance, or shared.ErrNotFound on a miss
func (c *RedisBalanceCache) Get(ctx context.Context, invoiceID uuid.UUID) (*appbilling.InvoiceBalance, error) {
	data, err := c.client.Get(ctx, c.key(invoiceID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read balance from cache: %w", err)
	}

	var balance appbilling.InvoiceBalance
	if err := json.Unmarshal(data, &balance); err != nil {
		return nil, fmt.Errorf("failed to decode cached balance: %w", err)
	}
	return &balance, nil
}

// Set stores the balance snapshot with the configured TTL
func (c *RedisBalanceCache) Set(ctx context.Context, balance appbilling.InvoiceBalance) error {
	data, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("failed to encode balance: %w", err)
	}
	if err := c.client.Set(ctx, c.key(balance.InvoiceID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write balance to cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached balance
func (c *RedisBalanceCache) Invalidate(ctx context.Context, invoiceID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(invoiceID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached balance: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisBalanceCache) Close() error {
	return c.client.Close()
}

// Ensure RedisBalanceCache implements BalanceCache
var _ appbilling.BalanceCache = (*RedisBalanceCache)(nil)
