package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/ruralpay/ledger/internal/gateway"
)

// BankListKey is the cache key of the gateway bank list
const BankListKey = "instamoney-banks"

var ErrCacheMiss = errors.New("cache miss")

// BankCache stores the gateway's bank list between lookups
type BankCache interface {
	GetBanks(ctx context.Context) ([]gateway.Bank, error)
	SetBanks(ctx context.Context, banks []gateway.Bank, ttl time.Duration) error
}

type RedisBankCache struct {
	client *redis.Client
}

func NewRedisBankCache(client *redis.Client) *RedisBankCache {
	return &RedisBankCache{client: client}
}

func (c *RedisBankCache) GetBanks(ctx context.Context) ([]gateway.Bank, error) {
	data, err := c.client.Get(ctx, BankListKey).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var banks []gateway.Bank
	if err := json.Unmarshal(data, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

func (c *RedisBankCache) SetBanks(ctx context.Context, banks []gateway.Bank, ttl time.Duration) error {
	data, err := json.Marshal(banks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, BankListKey, string(data), ttl).Err()
}

// MemoryBankCache is used when Redis is not reachable
type MemoryBankCache struct {
	mu        sync.RWMutex
	banks     []gateway.Bank
	expiresAt time.Time
	now       func() time.Time
}

func NewMemoryBankCache() *MemoryBankCache {
	return &MemoryBankCache{now: time.Now}
}

func (c *MemoryBankCache) GetBanks(ctx context.Context) ([]gateway.Bank, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.banks == nil || !c.now().Before(c.expiresAt) {
		return nil, ErrCacheMiss
	}
	banks := make([]gateway.Bank, len(c.banks))
	copy(banks, c.banks)
	return banks, nil
}

func (c *MemoryBankCache) SetBanks(ctx context.Context, banks []gateway.Bank, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.banks = make([]gateway.Bank, len(banks))
	copy(c.banks, banks)
	c.expiresAt = c.now().Add(ttl)
	return nil
}
