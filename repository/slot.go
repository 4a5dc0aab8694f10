package repository

import (
	"context"

	"github.com/fastygo/careconnect/domain"
)

// SlotStore is a durable string-to-string map. Values are opaque: the store never
// inspects or validates what it holds.
type SlotStore interface {
	// Load returns the value stored under key. found is false when the slot has
	// never been written or was cleared.
	Load(ctx context.Context, key string) (value string, found bool, err error)
	// Save overwrites the value stored under key.
	Save(ctx context.Context, key, value string) error
}

// SlotClearer removes a slot entirely. Used for out-of-band maintenance only.
type SlotClearer interface {
	Clear(ctx context.Context, key string) error
}

// HealthChecker is implemented by backends that can report reachability.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// SuggestionSource fetches suggested tasks from a remote catalogue.
type SuggestionSource interface {
	Suggestions(ctx context.Context, limit int) ([]domain.Suggestion, error)
}

// WeatherSource fetches current conditions for a fixed location.
type WeatherSource interface {
	Current(ctx context.Context) (domain.Weather, error)
}
