package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/repository"
)

// BreakerReporter is implemented by the remote clients.
type BreakerReporter interface {
	State() gobreaker.State
}

type Monitor struct {
	driver  string
	storage repository.HealthChecker
	remotes map[string]BreakerReporter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(driver string, storage repository.HealthChecker, remotes map[string]BreakerReporter, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		driver:   driver,
		storage:  storage,
		remotes:  remotes,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether the slot backend answered the last check.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Storage.Online
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs all checks once and stores the result.
func (m *Monitor) Refresh() Status {
	status := Status{
		Storage:   m.checkStorage(),
		Remotes:   make(map[string]RemoteStatus, len(m.remotes)),
		LastCheck: time.Now(),
	}
	for name, r := range m.remotes {
		status.Remotes[name] = RemoteStatus{Breaker: r.State().String()}
	}

	m.mu.Lock()
	wasOnline := m.status.Storage.Online
	m.status = status
	m.mu.Unlock()

	if wasOnline && !status.Storage.Online {
		m.logger.Warn("slot backend went offline", zap.String("driver", m.driver), zap.String("error", status.Storage.Error))
	}
	return status
}

func (m *Monitor) checkStorage() StorageStatus {
	st := StorageStatus{Driver: m.driver}
	if m.storage == nil {
		st.Error = "not configured"
		return st
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.storage.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Online = true
	return st
}
