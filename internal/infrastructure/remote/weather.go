package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/config"
	"github.com/fastygo/careconnect/repository"
)

type forecast struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// WeatherClient reads current conditions from the Open-Meteo forecast API.
type WeatherClient struct {
	*endpoint
	latitude  string
	longitude string
}

var _ repository.WeatherSource = (*WeatherClient)(nil)

// NewWeatherClient builds a client for the coordinates in cfg.
func NewWeatherClient(cfg config.WeatherConfig, bc config.BreakerConfig, logger *zap.Logger) *WeatherClient {
	return &WeatherClient{
		endpoint:  newEndpoint("weather", cfg.BaseURL, cfg.Timeout, bc, logger),
		latitude:  strconv.FormatFloat(cfg.Latitude, 'f', -1, 64),
		longitude: strconv.FormatFloat(cfg.Longitude, 'f', -1, 64),
	}
}

// Current returns the current temperature and wind speed. Readings missing from the
// response are left nil.
func (c *WeatherClient) Current(ctx context.Context) (domain.Weather, error) {
	body, err := c.get(ctx, "/v1/forecast", map[string]string{
		"latitude":  c.latitude,
		"longitude": c.longitude,
		"current":   "temperature_2m,wind_speed_10m",
		"timezone":  "auto",
	})
	if err != nil {
		return domain.Weather{}, err
	}

	var f forecast
	if err := json.Unmarshal(body, &f); err != nil {
		return domain.Weather{}, fmt.Errorf("decode forecast: %w", err)
	}
	return domain.Weather{
		Temperature: f.Current.Temperature,
		WindSpeed:   f.Current.WindSpeed,
	}, nil
}
