package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/config"
)

var testBreaker = config.BreakerConfig{
	MaxRequests:      1,
	Interval:         time.Minute,
	Timeout:          time.Minute,
	FailureThreshold: 2,
}

func TestSuggestionClientMapsAndLimits(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/todos", r.URL.Path)
		gotQuery = r.URL.Query().Get("_limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"userId":1,"id":1,"title":"delectus aut autem","completed":false},
			{"userId":1,"id":2,"title":"quis ut nam facilis","completed":true},
			{"userId":1,"id":3,"title":"no completed field"}
		]`))
	}))
	defer srv.Close()

	client := NewSuggestionClient(config.SuggestionsConfig{BaseURL: srv.URL, Timeout: time.Second}, testBreaker, nil)

	items, err := client.Suggestions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "2", gotQuery)
	assert.Equal(t, []domain.Suggestion{
		{ID: 1, Title: "delectus aut autem"},
		{ID: 2, Title: "quis ut nam facilis", Completed: true},
	}, items)

	items, err = client.Suggestions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.False(t, items[2].Completed)
}

func TestSuggestionClientFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"oops":`))
			},
		},
		{
			name: "object instead of list",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"id":1}`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewSuggestionClient(config.SuggestionsConfig{BaseURL: srv.URL, Timeout: time.Second}, testBreaker, nil)
			_, err := client.Suggestions(context.Background(), 5)
			assert.Error(t, err)
		})
	}
}

func TestSuggestionClientBreakerOpens(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewSuggestionClient(config.SuggestionsConfig{BaseURL: srv.URL, Timeout: time.Second}, testBreaker, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.Suggestions(ctx, 5)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	}

	_, err := client.Suggestions(ctx, 5)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, gobreaker.StateOpen, client.State())
}

func TestWeatherClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "33.5313", q.Get("latitude"))
		assert.Equal(t, "-117.7076", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "auto", q.Get("timezone"))
		_, _ = w.Write([]byte(`{"current":{"time":"2025-11-19T11:45","temperature_2m":18.4,"wind_speed_10m":7.2}}`))
	}))
	defer srv.Close()

	client := NewWeatherClient(config.WeatherConfig{
		BaseURL:   srv.URL,
		Latitude:  33.5313,
		Longitude: -117.7076,
		Timeout:   time.Second,
	}, testBreaker, nil)

	weather, err := client.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, weather.Temperature)
	require.NotNil(t, weather.WindSpeed)
	assert.InDelta(t, 18.4, *weather.Temperature, 1e-9)
	assert.InDelta(t, 7.2, *weather.WindSpeed, 1e-9)
}

func TestWeatherClientMissingReadings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":null}}`))
	}))
	defer srv.Close()

	client := NewWeatherClient(config.WeatherConfig{BaseURL: srv.URL}, testBreaker, nil)

	weather, err := client.Current(context.Background())
	require.NoError(t, err)
	assert.Nil(t, weather.Temperature)
	assert.Nil(t, weather.WindSpeed)
}
