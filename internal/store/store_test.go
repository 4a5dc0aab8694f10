package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchNotifiesListenersOnChangeOnly(t *testing.T) {
	s := NewRecordStore("activities", nil, nil)
	ctx := context.Background()

	var got []string
	unsubscribe := s.Subscribe(func(_ context.Context, state RecordState, in Intent) {
		got = append(got, in.IntentName())
	})

	s.Dispatch(ctx, AddRecord{Description: "a", CreatedAt: t0})
	s.Dispatch(ctx, ToggleCompletion{ID: 42})
	s.Dispatch(ctx, ToggleCompletion{ID: 1})

	assert.Equal(t, []string{"records/add", "records/toggle"}, got)

	unsubscribe()
	unsubscribe()
	s.Dispatch(ctx, ToggleCompletion{ID: 1})
	assert.Len(t, got, 2)
}

func TestDispatchListenerSeesNewState(t *testing.T) {
	s := NewRecordStore("activities", nil, nil)
	var seen RecordState
	s.Subscribe(func(_ context.Context, state RecordState, _ Intent) {
		seen = state
	})

	s.Dispatch(context.Background(), AddRecord{Description: "a", CreatedAt: t0})

	assert.Equal(t, s.State(), seen)
}

func TestDispatchIgnoresNilIntent(t *testing.T) {
	s := NewRecordStore("activities", nil, nil)
	assert.False(t, s.Dispatch(context.Background(), nil))
}

func TestConcurrentDispatchKeepsIDsUnique(t *testing.T) {
	s := NewRecordStore("activities", nil, nil)
	ctx := context.Background()

	var order []int
	var mu sync.Mutex
	s.Subscribe(func(_ context.Context, state RecordState, _ Intent) {
		mu.Lock()
		order = append(order, state.Records[0].ID)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Dispatch(ctx, AddRecord{Description: "x", CreatedAt: t0})
		}()
	}
	wg.Wait()

	records := s.State().Records
	require.Len(t, records, 50)
	seen := make(map[int]bool)
	for _, r := range records {
		assert.False(t, seen[r.ID])
		seen[r.ID] = true
	}
	for i, id := range order {
		assert.Equal(t, i+1, id, "listeners must observe dispatches in order")
	}
}

func TestDispatchIfChecksGuardUnderDispatch(t *testing.T) {
	s := NewRecordStore("tasks", nil, nil)
	ctx := context.Background()

	calls := 0
	s.Subscribe(func(context.Context, RecordState, Intent) { calls++ })

	assert.False(t, s.DispatchIf(ctx, AddRecord{Description: "a", CreatedAt: t0}, func() bool { return false }))
	assert.Empty(t, s.State().Records)
	assert.Equal(t, 0, calls)

	assert.True(t, s.DispatchIf(ctx, AddRecord{Description: "b", CreatedAt: t0}, func() bool { return true }))
	assert.True(t, s.DispatchIf(ctx, AddRecord{Description: "c", CreatedAt: t0}, nil))
	assert.Len(t, s.State().Records, 2)
	assert.Equal(t, 2, calls)
}
