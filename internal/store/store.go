// Package store holds the owned, intent-driven state containers for activities and
// tasks.
//
// A Store applies intents one at a time through a pure reducer. Dispatch is
// serialized, so every reducer call runs to completion before the next one starts
// and listeners observe states in dispatch order. State values handed out by a
// Store are never mutated afterwards: reducers copy slices before changing them.
package store

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/internal/metrics"
)

// Reducer returns the next state and whether anything changed.
type Reducer[S any] func(state S, in Intent) (S, bool)

// Listener is called after an intent changed the state. Listeners run on the
// dispatching goroutine while dispatch is held and must not dispatch into the same
// store.
type Listener[S any] func(ctx context.Context, state S, in Intent)

type subscription[S any] struct {
	id uint64
	fn Listener[S]
}

// Store is a state container owned by its creator and passed by handle to consumers.
type Store[S any] struct {
	name   string
	reduce Reducer[S]
	logger *zap.Logger

	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     S
	listeners []subscription[S]
	nextSubID uint64
}

// New creates a store named name (used in logs and metrics) holding initial.
func New[S any](name string, initial S, reduce Reducer[S], logger *zap.Logger) *Store[S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store[S]{
		name:   name,
		reduce: reduce,
		logger: logger.With(zap.String("store", name)),
		state:  initial,
	}
}

// Name returns the store name.
func (s *Store[S]) Name() string {
	return s.name
}

// State returns the current state snapshot.
func (s *Store[S]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies in and notifies listeners when the state changed. It reports
// whether the state changed.
func (s *Store[S]) Dispatch(ctx context.Context, in Intent) bool {
	return s.DispatchIf(ctx, in, nil)
}

// DispatchIf is Dispatch guarded by allow. allow is evaluated once dispatch is
// held, so no other intent can be applied between the check and the reducer call.
// A nil allow always applies.
func (s *Store[S]) DispatchIf(ctx context.Context, in Intent, allow func() bool) bool {
	if in == nil {
		return false
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if allow != nil && !allow() {
		s.logger.Debug("intent withdrawn before dispatch", zap.String("intent", in.IntentName()))
		return false
	}

	s.mu.Lock()
	next, changed := s.reduce(s.state, in)
	if changed {
		s.state = next
	}
	listeners := make([]subscription[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	metrics.IntentsTotal.WithLabelValues(s.name, in.IntentName(), strconv.FormatBool(changed)).Inc()
	if !changed {
		s.logger.Debug("intent left state unchanged", zap.String("intent", in.IntentName()))
		return false
	}

	for _, l := range listeners {
		l.fn(ctx, next, in)
	}
	return true
}

// Subscribe registers l and returns a function that removes it.
func (s *Store[S]) Subscribe(l Listener[S]) func() {
	if l == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription[S]{id: id, fn: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					return
				}
			}
		})
	}
}
