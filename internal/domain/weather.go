package domain

import "time"

// WeatherSnapshot is the formatted result of one weather lookup. It is
// stored verbatim on a session and replaced wholesale on re-fetch,
// never partially merged.
type WeatherSnapshot struct {
	Location      string    `json:"location"`
	Temperature   string    `json:"temperature"`
	Condition     string    `json:"condition"`
	Icon          string    `json:"icon"`
	FeelsLike     string    `json:"feels_like"`
	Humidity      string    `json:"humidity"`
	Wind          string    `json:"wind"`
	Precipitation string    `json:"precipitation"`
	UVIndex       float64   `json:"uv_index"`
	Visibility    string    `json:"visibility"`
	LocalTime     string    `json:"local_time"`
	FetchedAt     time.Time `json:"fetched_at"`
}
