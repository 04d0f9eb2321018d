package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	appbilling "github.com/plantlease/backend/internal/application/billing"
	"github.com/plantlease/backend/internal/domain/shared"
)

// InMemoryBalanceCache implements the billing BalanceCache with a local
// map. Suitable for single-instance deployments and tests; entries
// expire lazily on read.
type InMemoryBalanceCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]balanceEntry
	ttl     time.Duration
}

type balanceEntry struct {
	balance   appbilling.InvoiceBalance
	expiresAt time.Time
}

// NewInMemoryBalanceCache creates a new in-memory balance cache.
// A non-positive TTL means entries never expire.
func NewInMemoryBalanceCache(ttl time.Duration) *InMemoryBalanceCache {
	return &InMemoryBalanceCache{
		entries: make(map[uuid.UUID]balanceEntry),
		ttl:     ttl,
	}
}

// Get returns the cached balance, or shared.ErrNotFound on a miss
func (c *InMemoryBalanceCache) Get(_ context.Context, invoiceID uuid.UUID) (*appbilling.InvoiceBalance, error) {
	c.mu.RLock()
	entry, ok := c.entries[invoiceID]
	c.mu.RUnlock()

	if !ok {
		return nil, shared.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, invoiceID)
		c.mu.Unlock()
		return nil, shared.ErrNotFound
	}

	balance := entry.balance
	return &balance, nil
}

// Set stores the balance snapshot
func (c *InMemoryBalanceCache) Set(_ context.Context, balance appbilling.InvoiceBalance) error {
	entry := balanceEntry{balance: balance}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[balance.InvoiceID] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate removes the cached balance
func (c *InMemoryBalanceCache) Invalidate(_ context.Context, invoiceID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, invoiceID)
	c.mu.Unlock()
	return nil
}

// Ensure InMemoryBalanceCache implements BalanceCache
var _ appbilling.BalanceCache = (*InMemoryBalanceCache)(nil)
