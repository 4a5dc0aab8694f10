package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/metrics"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/repository"
)

// SyncConfig controls how a Synchronizer reads and writes its slot.
type SyncConfig struct {
	Key         string
	Policy      store.HydrationPolicy
	SaveTimeout time.Duration
}

// Synchronizer keeps one store's record collection in one durable slot. On Mount
// it reads the slot once and hydrates the store; afterwards every change to the
// record collection writes a full snapshot back. It is the only writer of its slot.
type Synchronizer[S any] struct {
	store   *store.Store[S]
	slots   repository.SlotStore
	records func(S) []domain.Record
	cfg     SyncConfig
	logger  *zap.Logger

	mu          sync.Mutex
	unsubscribe func()
}

// NewSynchronizer binds st to the slot cfg.Key. records extracts the persisted
// collection from the store state.
func NewSynchronizer[S any](
	st *store.Store[S],
	slots repository.SlotStore,
	records func(S) []domain.Record,
	cfg SyncConfig,
	logger *zap.Logger,
) *Synchronizer[S] {
	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = 3 * time.Second
	}
	if cfg.Policy == "" {
		cfg.Policy = store.HydrateLenient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer[S]{
		store:   st,
		slots:   slots,
		records: records,
		cfg:     cfg,
		logger:  logger.With(zap.String("slot", cfg.Key), zap.String("store", st.Name())),
	}
}

// Mount hydrates the store from its slot and starts persisting changes. Storage
// failures are logged and absorbed: the store keeps working in memory. Mounting an
// already mounted synchronizer does nothing.
func (s *Synchronizer[S]) Mount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		return
	}

	s.hydrate(ctx)
	s.unsubscribe = s.store.Subscribe(s.persist)
	metrics.RecordsGauge.WithLabelValues(s.store.Name()).Set(float64(len(s.records(s.store.State()))))
}

// Unmount stops persisting changes. A later Mount reads the slot again.
func (s *Synchronizer[S]) Unmount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe == nil {
		return
	}
	s.unsubscribe()
	s.unsubscribe = nil
}

// Mounted reports whether changes are currently being persisted.
func (s *Synchronizer[S]) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unsubscribe != nil
}

func (s *Synchronizer[S]) hydrate(ctx context.Context) {
	raw, found, err := s.slots.Load(ctx, s.cfg.Key)
	if err != nil {
		metrics.HydrationsTotal.WithLabelValues(s.cfg.Key, "error").Inc()
		s.logger.Warn("slot load failed, keeping in-memory state", zap.Error(err))
		return
	}
	if !found {
		metrics.HydrationsTotal.WithLabelValues(s.cfg.Key, "missing").Inc()
		s.logger.Debug("slot empty, keeping initial state")
		return
	}

	records, err := store.DecodeRecords(raw, s.cfg.Policy)
	if err != nil {
		outcome := "rejected"
		if errors.Is(err, domain.ErrNotSequence) {
			outcome = "not_sequence"
		}
		metrics.HydrationsTotal.WithLabelValues(s.cfg.Key, outcome).Inc()
		s.logger.Warn("slot snapshot ignored", zap.String("outcome", outcome), zap.Error(err))
		return
	}

	s.store.Dispatch(ctx, store.HydrateRecords{Records: records})
	metrics.HydrationsTotal.WithLabelValues(s.cfg.Key, "hydrated").Inc()
	if kept := store.KeptVerbatim(records); kept > 0 {
		s.logger.Warn("slot holds elements that are not well-formed records, keeping them as stored",
			zap.Int("elements", kept))
	}
	s.logger.Info("store hydrated from slot", zap.Int("records", len(records)))
}

// persist runs inside Dispatch, so snapshots reach the slot in dispatch order.
func (s *Synchronizer[S]) persist(ctx context.Context, state S, in store.Intent) {
	if !store.IsRecordIntent(in) {
		return
	}
	records := s.records(state)
	metrics.RecordsGauge.WithLabelValues(s.store.Name()).Set(float64(len(records)))

	// The request that triggered the change may end before the write does.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.SaveTimeout)
	defer cancel()

	if err := s.Save(saveCtx, records); err != nil {
		metrics.SnapshotSavesTotal.WithLabelValues(s.cfg.Key, "error").Inc()
		s.logger.Error("snapshot save failed", zap.String("intent", in.IntentName()), zap.Error(err))
		return
	}
	metrics.SnapshotSavesTotal.WithLabelValues(s.cfg.Key, "ok").Inc()
}

// Save writes records to the slot as a full snapshot.
func (s *Synchronizer[S]) Save(ctx context.Context, records []domain.Record) error {
	raw, err := store.EncodeRecords(records)
	if err != nil {
		return err
	}
	return s.slots.Save(ctx, s.cfg.Key, raw)
}

// ActivityRecords extracts the persisted collection from activity state.
func ActivityRecords(s store.RecordState) []domain.Record { return s.Records }

// TaskRecords extracts the persisted collection from task state.
func TaskRecords(s store.TaskState) []domain.Record { return s.Records }
