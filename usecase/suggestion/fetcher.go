// Package suggestion drives the suggested-task fetch lifecycle in the task store.
package suggestion

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/repository"
)

// Fetcher starts suggestion fetches and reports their outcome into the task store.
type Fetcher struct {
	store  *store.Store[store.TaskState]
	source repository.SuggestionSource
	limit  int
	logger *zap.Logger

	seq atomic.Uint64
}

// NewFetcher builds a fetcher that asks source for at most limit suggestions.
func NewFetcher(st *store.Store[store.TaskState], source repository.SuggestionSource, limit int, logger *zap.Logger) *Fetcher {
	if limit <= 0 {
		limit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		store:  st,
		source: source,
		limit:  limit,
		logger: logger,
	}
}

// Handle controls one in-flight fetch.
type Handle struct {
	id        uint64
	cancel    context.CancelFunc
	done      chan struct{}
	cancelled atomic.Bool
	once      sync.Once
}

// ID identifies the fetch in the store's suggestion state.
func (h *Handle) ID() uint64 {
	return h.id
}

// Cancel aborts the request. Unless the store was already applying the result
// when Cancel was called, the result is dropped and the suggestion state stays as
// Cancel found it.
func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		h.cancelled.Store(true)
		h.cancel()
	})
}

// active is checked while the store holds dispatch.
func (h *Handle) active() bool {
	return !h.cancelled.Load()
}

// Done is closed once the fetch goroutine has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Start marks the suggestions as loading and fetches them in the background. The
// fetch is detached from ctx cancellation and only stops through Handle.Cancel.
func (f *Fetcher) Start(ctx context.Context) *Handle {
	id := f.seq.Add(1)
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := &Handle{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	source := f.source
	f.store.Dispatch(ctx, store.SuggestionsRequested{RequestID: id})

	go func() {
		defer close(h.done)
		defer cancel()

		items, err := source.Suggestions(fetchCtx, f.limit)
		var result store.Intent
		if err != nil {
			if h.active() {
				f.logger.Warn("suggestion fetch failed", zap.Uint64("request_id", id), zap.Error(err))
			}
			result = store.SuggestionsFailed{RequestID: id, Message: domain.MsgSuggestionsUnavailable}
		} else {
			if len(items) > f.limit {
				items = items[:f.limit]
			}
			result = store.SuggestionsReceived{RequestID: id, Items: items}
		}

		if !f.store.DispatchIf(fetchCtx, result, h.active) && h.cancelled.Load() {
			f.logger.Debug("suggestion result dropped after cancel", zap.Uint64("request_id", id))
		}
	}()

	return h
}
