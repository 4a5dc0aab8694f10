// Package activity is the dashboard view: the activity log plus current weather.
package activity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/usecase"
)

// DefaultActivities seeds the activity log before anything has been persisted.
func DefaultActivities() []domain.Record {
	return []domain.Record{
		{
			ID:          1,
			Description: "Breakfast – oatmeal with banana and milk.",
			CreatedAt:   time.Date(2025, 11, 19, 8, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Description: "Playtime outside – 30 minutes at the park.",
			CreatedAt:   time.Date(2025, 11, 19, 9, 30, 0, 0, time.UTC),
		},
	}
}

// Weather is the dashboard's view of the weather refresher.
type Weather interface {
	State() domain.WeatherState
	Refresh(ctx context.Context) domain.WeatherState
}

type UseCase struct {
	store   *store.Store[store.RecordState]
	sync    usecase.Mounter
	weather Weather
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	mounted bool
}

func New(st *store.Store[store.RecordState], syncer usecase.Mounter, weather Weather, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:   st,
		sync:    syncer,
		weather: weather,
		logger:  logger,
		now:     time.Now,
	}
}

// Mount hydrates the activity log and fetches the weather the first time the
// dashboard is shown. Later calls do nothing until Unmount. The weather is fetched
// without holding the view, so intents dispatched meanwhile are not delayed.
func (uc *UseCase) Mount(ctx context.Context) {
	uc.mu.Lock()
	if uc.mounted {
		uc.mu.Unlock()
		return
	}
	uc.mounted = true
	if uc.sync != nil {
		uc.sync.Mount(ctx)
	}
	uc.mu.Unlock()

	if uc.weather != nil {
		uc.weather.Refresh(ctx)
	}
	uc.logger.Debug("dashboard mounted", zap.Int("activities", len(uc.store.State().Records)))
}

// Unmount stops persisting the activity log.
func (uc *UseCase) Unmount() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.mounted {
		return
	}
	uc.mounted = false
	if uc.sync != nil {
		uc.sync.Unmount()
	}
}

// Activities returns the activity log, newest first.
func (uc *UseCase) Activities() []domain.Record {
	return uc.store.State().Records
}

// Weather returns the current weather view state.
func (uc *UseCase) Weather() domain.WeatherState {
	if uc.weather == nil {
		return domain.WeatherState{}
	}
	return uc.weather.State()
}

// AddActivity logs a new activity. Blank descriptions are rejected before the
// store is touched.
func (uc *UseCase) AddActivity(ctx context.Context, description string) ([]domain.Record, error) {
	desc, err := usecase.NormalizeDescription(description)
	if err != nil {
		return nil, err
	}
	uc.store.Dispatch(ctx, store.AddRecord{Description: desc, CreatedAt: usecase.Stamp(uc.now())})
	return uc.Activities(), nil
}

// ToggleActivity flips the completion flag of activity id.
func (uc *UseCase) ToggleActivity(ctx context.Context, id int) ([]domain.Record, error) {
	if !uc.store.Dispatch(ctx, store.ToggleCompletion{ID: id}) {
		return nil, domain.ErrRecordNotFound
	}
	return uc.Activities(), nil
}
