package weather

import (
	"context"
	"testing"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &domain.WeatherSnapshot{Location: location, Condition: "Sunny"}, nil
}

func TestCachedProvider_Fetch(t *testing.T) {
	inner := &countingProvider{}
	cached := NewCachedProvider(inner, 16, time.Minute)
	ctx := context.Background()

	first, err := cached.Fetch(ctx, "Tokyo")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	// Same location, different casing, served from cache.
	second, err := cached.Fetch(ctx, "  tokyo ")
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first.Condition, second.Condition)

	_, err = cached.Fetch(ctx, "London")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: domain.ErrWeatherUnavailable}
	cached := NewCachedProvider(inner, 16, time.Minute)
	ctx := context.Background()

	_, err := cached.Fetch(ctx, "Tokyo")
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)

	inner.err = nil
	_, err = cached.Fetch(ctx, "Tokyo")
	assert.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
