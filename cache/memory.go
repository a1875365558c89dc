package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// memoryCache is an in-process cache backed by ristretto.
type memoryCache struct {
	cache *ristretto.Cache
}

func newMemoryCache() (*memoryCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     64 << 20, // 64 MiB
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}

	return &memoryCache{cache: cache}, nil
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := c.cache.Get(key)
	if !found {
		return nil, ErrCacheMiss
	}

	data, ok := value.([]byte)
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.SetWithTTL(key, value, int64(len(value)), ttl)
	// ristretto applies writes asynchronously; waiting keeps Set
	// read-your-write for the handlers.
	c.cache.Wait()
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.cache.Del(key)
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *memoryCache) Close() error {
	c.cache.Close()
	return nil
}

func (c *memoryCache) Name() string {
	return "memory"
}
