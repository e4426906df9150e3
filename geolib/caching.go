package geolib

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

type cachingProvider struct {
	Provider

	cache *ristretto.Cache
	ttl   time.Duration
}

func (c cachingProvider) Lookup(ctx context.Context, req Request) (LocationResult, error) {
	cacheKey := req.IP.String()

	value, ok := c.cache.Get(cacheKey)
	if ok {
		return value.(LocationResult), nil
	}

	result, err := c.Provider.Lookup(ctx, req)
	if err != nil {
		return nil, err
	}

	c.cache.SetWithTTL(cacheKey, result, 1, c.ttl)

	return result, nil
}

// NewCachingProvider wraps a provider with an in-memory TTL cache keyed
// by the requested IP address.
//
// Results of database readers and remote services depend on the IP
// alone, so those are the providers worth wrapping. Do not wrap a
// provider whose answer depends on the rest of the request environment:
// the cache key does not include it.
func NewCachingProvider(provider Provider, itemsCount uint, ttl time.Duration) Provider {
	cacheConfig := &ristretto.Config{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		Metrics:     false,
		BufferItems: 64,
	}

	cache, err := ristretto.NewCache(cacheConfig)
	if err != nil {
		panic(err)
	}

	return cachingProvider{
		Provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}
