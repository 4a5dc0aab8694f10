package domain

import "time"

// MsgWeatherUnavailable is shown when the weather fetch fails.
const MsgWeatherUnavailable = "Unable to load weather right now."

// Weather holds the current conditions for the configured coordinates. Nil readings mean
// the remote response did not carry the field.
type Weather struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windSpeed"`
}

// WeatherState is what the dashboard renders.
type WeatherState struct {
	Weather
	LastUpdated *time.Time `json:"lastUpdated"`
	IsLoading   bool       `json:"isLoading"`
	Error       string     `json:"error,omitempty"`
}
