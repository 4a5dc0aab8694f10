package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/repository"
)

// RefresherConfig controls how often the weather is refreshed in the background.
// A zero Interval disables the schedule; Refresh can still be called directly.
type RefresherConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// WeatherRefresher owns the dashboard weather state and keeps it current.
type WeatherRefresher struct {
	source repository.WeatherSource
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RefresherConfig
	now    func() time.Time
	group  singleflight.Group

	mu    sync.RWMutex
	state domain.WeatherState
}

func NewWeatherRefresher(source repository.WeatherSource, logger *zap.Logger, cfg RefresherConfig) *WeatherRefresher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	wr := &WeatherRefresher{
		source: source,
		logger: logger,
		cfg:    cfg,
		now:    time.Now,
	}

	if cfg.Interval > 0 {
		wr.cron = cron.New(cron.WithSeconds())
		schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
		if _, err := wr.cron.AddFunc(schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
			defer cancel()
			wr.Refresh(ctx)
		}); err != nil {
			logger.Warn("weather schedule rejected", zap.String("schedule", schedule), zap.Error(err))
			wr.cron = nil
		}
	}

	return wr
}

// Start launches the cron scheduler when an interval is configured.
func (wr *WeatherRefresher) Start() {
	if wr == nil || wr.cron == nil {
		return
	}
	wr.cron.Start()
	wr.logger.Info("weather refresher started", zap.Duration("interval", wr.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (wr *WeatherRefresher) Stop(ctx context.Context) {
	if wr == nil || wr.cron == nil {
		return
	}
	stopCtx := wr.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	wr.logger.Info("weather refresher stopped")
}

// State returns the current weather view state.
func (wr *WeatherRefresher) State() domain.WeatherState {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.state
}

// Refresh fetches current conditions synchronously. On failure the previous
// readings are kept and the error message is set. A call made while another
// refresh is in flight waits for that fetch and returns its outcome.
func (wr *WeatherRefresher) Refresh(ctx context.Context) domain.WeatherState {
	v, _, shared := wr.group.Do("current", func() (interface{}, error) {
		return wr.refresh(ctx), nil
	})
	if shared {
		wr.logger.Debug("weather refresh joined one in flight")
	}
	return v.(domain.WeatherState)
}

func (wr *WeatherRefresher) refresh(ctx context.Context) domain.WeatherState {
	wr.mu.Lock()
	wr.state.IsLoading = true
	wr.state.Error = ""
	wr.mu.Unlock()

	weather, err := wr.source.Current(ctx)

	wr.mu.Lock()
	defer wr.mu.Unlock()
	wr.state.IsLoading = false
	if err != nil {
		wr.logger.Warn("weather refresh failed", zap.Error(err))
		wr.state.Error = domain.MsgWeatherUnavailable
		return wr.state
	}
	updated := wr.now()
	wr.state.Weather = weather
	wr.state.LastUpdated = &updated
	return wr.state
}
