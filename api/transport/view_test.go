package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
)

var renderer = Renderer{
	Location: time.UTC,
	Now:      func() time.Time { return time.Date(2025, 11, 19, 11, 53, 0, 0, time.UTC) },
}

func TestRecordsView(t *testing.T) {
	views := renderer.Records([]domain.Record{
		{ID: 2, Description: "Nap", CreatedAt: time.Date(2025, 11, 19, 11, 23, 0, 0, time.UTC), IsCompleted: true},
		{ID: 1, Description: "Breakfast", CreatedAt: time.Date(2025, 11, 19, 8, 0, 0, 0, time.UTC)},
	})

	require.Len(t, views, 2)
	assert.Equal(t, "Completed", views[0].Status)
	assert.Equal(t, "30 minutes ago", views[0].CreatedAgo)
	assert.Equal(t, "Pending", views[1].Status)
	assert.Equal(t, "Nov 19, 2025 at 8:00 AM", views[1].CreatedOn)
	assert.Equal(t, "4 hours ago", views[1].CreatedAgo)
}

func TestWeatherView(t *testing.T) {
	temp, wind := 18.4, 7.0
	updated := time.Date(2025, 11, 19, 11, 53, 0, 0, time.UTC)

	tests := []struct {
		name    string
		state   domain.WeatherState
		summary string
	}{
		{
			name:    "readings",
			state:   domain.WeatherState{Weather: domain.Weather{Temperature: &temp, WindSpeed: &wind}, LastUpdated: &updated},
			summary: "18.4°C, wind 7 km/h",
		},
		{
			name:    "missing reading",
			state:   domain.WeatherState{Weather: domain.Weather{Temperature: &temp}},
			summary: MsgWeatherNotPresent,
		},
		{
			name:  "loading",
			state: domain.WeatherState{IsLoading: true},
		},
		{
			name:  "error",
			state: domain.WeatherState{Error: domain.MsgWeatherUnavailable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := renderer.Weather(tt.state)
			assert.Equal(t, tt.summary, view.Summary)
			assert.Equal(t, tt.state.Error, view.Error)
		})
	}

	view := renderer.Weather(tests[0].state)
	assert.Equal(t, "Nov 19, 2025 at 11:53 AM", view.LastUpdated)
}

func TestTasksViewEmptyMessages(t *testing.T) {
	view := renderer.Tasks(store.TaskState{
		Suggestions: store.SuggestionState{Status: domain.SuggestionsLoaded},
	})
	assert.Equal(t, MsgNoTasks, view.EmptyMessage)
	assert.Equal(t, MsgNoSuggestions, view.Suggestions.EmptyMessage)
	assert.NotNil(t, view.Suggestions.Items)
	assert.NotNil(t, view.Tasks)

	loading := renderer.Suggestions(store.SuggestionState{Status: domain.SuggestionsLoading})
	assert.True(t, loading.IsLoading)
	assert.Empty(t, loading.EmptyMessage)

	idle := renderer.Suggestions(store.SuggestionState{Status: domain.SuggestionsIdle})
	assert.False(t, idle.IsLoading)
	assert.Empty(t, idle.EmptyMessage)
	assert.Empty(t, renderer.Tasks(store.TaskState{}).Suggestions.EmptyMessage)

	failed := renderer.Suggestions(store.SuggestionState{Status: domain.SuggestionsFailed, Error: domain.MsgSuggestionsUnavailable})
	assert.Empty(t, failed.EmptyMessage)
	assert.Equal(t, domain.MsgSuggestionsUnavailable, failed.Error)
}

func TestDashboardView(t *testing.T) {
	view := renderer.Dashboard(nil, domain.WeatherState{})
	assert.Equal(t, MsgNoActivities, view.EmptyMessage)
	assert.Empty(t, view.Activities)
}
