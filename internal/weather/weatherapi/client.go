package weatherapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Rrens/weather-advisor/internal/domain"
)

const defaultBaseURL = "https://api.weatherapi.com/v1"

// Client fetches current conditions from WeatherAPI.com.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a WeatherAPI client. An empty baseURL selects the
// production endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type currentResponse struct {
	Location struct {
		Name      string `json:"name"`
		Country   string `json:"country"`
		Localtime string `json:"localtime"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		Condition struct {
			Text string `json:"text"`
			Icon string `json:"icon"`
		} `json:"condition"`
		FeelsLikeC float64 `json:"feelslike_c"`
		Humidity   int     `json:"humidity"`
		WindKph    float64 `json:"wind_kph"`
		WindDir    string  `json:"wind_dir"`
		PrecipMm   float64 `json:"precip_mm"`
		UV         float64 `json:"uv"`
		VisKm      float64 `json:"vis_km"`
	} `json:"current"`
}

// Fetch looks up current weather for a location. Any failure is
// reported as domain.ErrWeatherUnavailable.
func (c *Client) Fetch(ctx context.Context, location string) (*domain.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf("%s/current.json?key=%s&q=%s&aqi=yes",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(location))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weatherapi returned status %d for %q", domain.ErrWeatherUnavailable, resp.StatusCode, location)
	}

	var data currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}

	return format(data), nil
}

// format shapes the raw API payload into the snapshot stored on a
// session.
func format(data currentResponse) *domain.WeatherSnapshot {
	loc := data.Location
	cur := data.Current
	return &domain.WeatherSnapshot{
		Location:      fmt.Sprintf("%s, %s", loc.Name, loc.Country),
		Temperature:   fmt.Sprintf("%g°C / %g°F", cur.TempC, cur.TempF),
		Condition:     cur.Condition.Text,
		Icon:          cur.Condition.Icon,
		FeelsLike:     fmt.Sprintf("%g°C", cur.FeelsLikeC),
		Humidity:      fmt.Sprintf("%d%%", cur.Humidity),
		Wind:          fmt.Sprintf("%g km/h %s", cur.WindKph, cur.WindDir),
		Precipitation: fmt.Sprintf("%g mm", cur.PrecipMm),
		UVIndex:       cur.UV,
		Visibility:    fmt.Sprintf("%g km", cur.VisKm),
		LocalTime:     loc.Localtime,
		FetchedAt:     time.Now(),
	}
}
