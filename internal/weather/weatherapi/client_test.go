package weatherapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rrens/weather-advisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"location": {"name": "Tokyo", "country": "Japan", "localtime": "2024-05-01 14:30"},
	"current": {
		"temp_c": 22.5, "temp_f": 72.5,
		"condition": {"text": "Sunny", "icon": "//cdn.weatherapi.com/sunny.png"},
		"feelslike_c": 24,
		"humidity": 55,
		"wind_kph": 13.3, "wind_dir": "SW",
		"precip_mm": 0,
		"uv": 6,
		"vis_km": 10
	}
}`

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/current.json", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Tokyo", r.URL.Query().Get("q"))
		assert.Equal(t, "yes", r.URL.Query().Get("aqi"))
		w.Write([]byte(samplePayload))
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	snapshot, err := client.Fetch(context.Background(), "Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "Tokyo, Japan", snapshot.Location)
	assert.Equal(t, "22.5°C / 72.5°F", snapshot.Temperature)
	assert.Equal(t, "Sunny", snapshot.Condition)
	assert.Equal(t, "24°C", snapshot.FeelsLike)
	assert.Equal(t, "55%", snapshot.Humidity)
	assert.Equal(t, "13.3 km/h SW", snapshot.Wind)
	assert.Equal(t, "0 mm", snapshot.Precipitation)
	assert.Equal(t, float64(6), snapshot.UVIndex)
	assert.Equal(t, "10 km", snapshot.Visibility)
	assert.Equal(t, "2024-05-01 14:30", snapshot.LocalTime)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestClient_Fetch_UnknownLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":1006,"message":"No matching location found."}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient("test-key", srv.URL)
	_, err := client.Fetch(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
}

func TestClient_Fetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force connection failures

	client := NewClient("test-key", srv.URL)
	_, err := client.Fetch(context.Background(), "Tokyo")
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
}
