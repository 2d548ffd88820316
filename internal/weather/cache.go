package weather

import (
	"context"
	"strings"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachedProvider decorates a Provider with a TTL-bound LRU so repeated
// lookups for the same place within the window skip the upstream call.
// Keys are normalized to lowercase.
type CachedProvider struct {
	inner Provider
	cache *expirable.LRU[string, domain.WeatherSnapshot]
}

// NewCachedProvider wraps inner with an LRU of the given size and TTL.
func NewCachedProvider(inner Provider, size int, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: expirable.NewLRU[string, domain.WeatherSnapshot](size, nil, ttl),
	}
}

func (p *CachedProvider) Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	key := strings.ToLower(strings.TrimSpace(location))
	if snapshot, ok := p.cache.Get(key); ok {
		return &snapshot, nil
	}

	snapshot, err := p.inner.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, *snapshot)
	return snapshot, nil
}
