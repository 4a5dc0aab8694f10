package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "careconnect_activities_v1", cfg.Storage.ActivitiesKey)
	assert.Equal(t, "careconnect_tasks_v1", cfg.Storage.TasksKey)
	assert.Equal(t, 5, cfg.Suggestions.Limit)
	assert.InDelta(t, 33.5313, cfg.Weather.Latitude, 1e-9)
	assert.InDelta(t, -117.7076, cfg.Weather.Longitude, 1e-9)
	assert.Equal(t, []string{"careconnect_activities_v1", "careconnect_tasks_v1"}, cfg.SlotKeys())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SUGGESTIONS_LIMIT", "3")
	t.Setenv("WEATHER_REFRESH_INTERVAL", "90")
	t.Setenv("WEATHER_LATITUDE", "not-a-number")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 3, cfg.Suggestions.Limit)
	assert.Equal(t, 90*time.Second, cfg.Weather.RefreshInterval)
	assert.InDelta(t, 33.5313, cfg.Weather.Latitude, 1e-9)
	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
}

func TestLoadRejectsBadStorage(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memcached")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("shared slot", func(t *testing.T) {
		t.Setenv("STORAGE_TASKS_KEY", "careconnect_activities_v1")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestLoadNonPositiveLimitFallsBack(t *testing.T) {
	t.Setenv("SUGGESTIONS_LIMIT", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Suggestions.Limit)
}
