package weather

import (
	"context"

	"github.com/Rrens/weather-advisor/internal/domain"
)

// Provider abstracts a weather data source. Implementations wrap any
// lookup failure (unknown location, network error, quota) around
// domain.ErrWeatherUnavailable.
type Provider interface {
	Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error)
}
