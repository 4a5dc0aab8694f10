// Package task is the tasks view: the caregiver's own tasks plus suggested tasks
// fetched from a remote catalogue.
package task

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
	"github.com/fastygo/careconnect/usecase"
	"github.com/fastygo/careconnect/usecase/suggestion"
)

type UseCase struct {
	store   *store.Store[store.TaskState]
	sync    usecase.Mounter
	fetcher *suggestion.Fetcher
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	mounted bool
	handle  *suggestion.Handle
}

func New(st *store.Store[store.TaskState], syncer usecase.Mounter, fetcher *suggestion.Fetcher, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:   st,
		sync:    syncer,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Mount hydrates the task list and starts one suggestion fetch. Later calls do
// nothing until Unmount.
func (uc *UseCase) Mount(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.mounted {
		return
	}
	uc.mounted = true

	if uc.sync != nil {
		uc.sync.Mount(ctx)
	}
	if uc.fetcher != nil {
		uc.handle = uc.fetcher.Start(ctx)
		uc.logger.Debug("suggestion fetch started", zap.Uint64("request_id", uc.handle.ID()))
	}
}

// Unmount cancels an in-flight suggestion fetch and stops persisting tasks.
func (uc *UseCase) Unmount() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if !uc.mounted {
		return
	}
	uc.mounted = false
	uc.handle.Cancel()
	uc.handle = nil
	if uc.sync != nil {
		uc.sync.Unmount()
	}
}

// State returns tasks and the suggestion lifecycle.
func (uc *UseCase) State() store.TaskState {
	return uc.store.State()
}

// AddTask adds a task. Blank descriptions are rejected before the store is touched.
func (uc *UseCase) AddTask(ctx context.Context, description string) ([]domain.Record, error) {
	desc, err := usecase.NormalizeDescription(description)
	if err != nil {
		return nil, err
	}
	uc.store.Dispatch(ctx, store.AddRecord{Description: desc, CreatedAt: usecase.Stamp(uc.now())})
	return uc.store.State().Records, nil
}

// ToggleTask flips the completion flag of task id.
func (uc *UseCase) ToggleTask(ctx context.Context, id int) ([]domain.Record, error) {
	if !uc.store.Dispatch(ctx, store.ToggleCompletion{ID: id}) {
		return nil, domain.ErrRecordNotFound
	}
	return uc.store.State().Records, nil
}
