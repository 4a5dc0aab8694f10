package suggestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/careconnect/domain"
	"github.com/fastygo/careconnect/internal/store"
)

type stubSource struct {
	items   []domain.Suggestion
	err     error
	release chan struct{}
	limit   int
}

func (s *stubSource) Suggestions(ctx context.Context, limit int) ([]domain.Suggestion, error) {
	s.limit = limit
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.items, s.err
}

func wait(t *testing.T, h *Handle) {
	t.Helper()
	select {
	case <-h.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not finish")
	}
}

func TestFetcherSuccess(t *testing.T) {
	st := store.NewTaskStore(nil)
	items := []domain.Suggestion{
		{ID: 1, Title: "delectus aut autem"},
		{ID: 2, Title: "quis ut nam facilis", Completed: true},
	}
	source := &stubSource{items: items, release: make(chan struct{})}
	f := NewFetcher(st, source, 5, nil)

	h := f.Start(context.Background())
	assert.Equal(t, domain.SuggestionsLoading, st.State().Suggestions.Status)

	close(source.release)
	wait(t, h)

	got := st.State().Suggestions
	assert.Equal(t, domain.SuggestionsLoaded, got.Status)
	assert.Equal(t, items, got.Items)
	assert.Empty(t, got.Error)
	assert.Equal(t, 5, source.limit)
}

func TestFetcherTruncatesToLimit(t *testing.T) {
	st := store.NewTaskStore(nil)
	source := &stubSource{items: []domain.Suggestion{{ID: 1}, {ID: 2}, {ID: 3}}}
	f := NewFetcher(st, source, 2, nil)

	wait(t, f.Start(context.Background()))

	assert.Len(t, st.State().Suggestions.Items, 2)
}

func TestFetcherFailureKeepsPreviousItems(t *testing.T) {
	st := store.NewTaskStore(nil)
	previous := []domain.Suggestion{{ID: 9, Title: "earlier"}}
	source := &stubSource{items: previous}
	f := NewFetcher(st, source, 5, nil)
	wait(t, f.Start(context.Background()))

	source.items = nil
	source.err = errors.New("status 503")
	wait(t, f.Start(context.Background()))

	got := st.State().Suggestions
	assert.Equal(t, domain.SuggestionsFailed, got.Status)
	assert.Equal(t, domain.MsgSuggestionsUnavailable, got.Error)
	assert.Equal(t, previous, got.Items)
}

func TestFetcherCancelDropsLateResult(t *testing.T) {
	st := store.NewTaskStore(nil)
	source := &stubSource{items: []domain.Suggestion{{ID: 1}}, release: make(chan struct{})}
	f := NewFetcher(st, source, 5, nil)

	h := f.Start(context.Background())
	h.Cancel()
	h.Cancel()
	wait(t, h)

	got := st.State().Suggestions
	assert.Equal(t, domain.SuggestionsLoading, got.Status)
	assert.Empty(t, got.Items)
	assert.Empty(t, got.Error)
}

func TestFetcherSupersededResultIsIgnored(t *testing.T) {
	st := store.NewTaskStore(nil)
	slow := &stubSource{items: []domain.Suggestion{{ID: 1, Title: "stale"}}, release: make(chan struct{})}
	f := NewFetcher(st, slow, 5, nil)
	first := f.Start(context.Background())

	fresh := []domain.Suggestion{{ID: 2, Title: "fresh"}}
	f.source = &stubSource{items: fresh}
	second := f.Start(context.Background())
	wait(t, second)
	require.NotEqual(t, first.ID(), second.ID())

	close(slow.release)
	wait(t, first)

	got := st.State().Suggestions
	assert.Equal(t, domain.SuggestionsLoaded, got.Status)
	assert.Equal(t, fresh, got.Items)
}

func TestFetcherIgnoresCallerCancellation(t *testing.T) {
	st := store.NewTaskStore(nil)
	source := &stubSource{items: []domain.Suggestion{{ID: 1}}, release: make(chan struct{})}
	f := NewFetcher(st, source, 5, nil)

	ctx, cancel := context.WithCancel(context.Background())
	h := f.Start(ctx)
	cancel()
	close(source.release)
	wait(t, h)

	assert.Equal(t, domain.SuggestionsLoaded, st.State().Suggestions.Status)
}

type gatedSource struct {
	items    []domain.Suggestion
	gate     chan struct{}
	returned chan struct{}
}

func (s *gatedSource) Suggestions(context.Context, int) ([]domain.Suggestion, error) {
	<-s.gate
	defer close(s.returned)
	return s.items, nil
}

func TestFetcherCancelWinsOverQueuedResult(t *testing.T) {
	st := store.NewTaskStore(nil)
	ctx := context.Background()

	source := &gatedSource{
		items:    []domain.Suggestion{{ID: 1, Title: "late"}},
		gate:     make(chan struct{}),
		returned: make(chan struct{}),
	}
	f := NewFetcher(st, source, 5, nil)
	h := f.Start(ctx)

	entered := make(chan struct{})
	release := make(chan struct{})
	st.Subscribe(func(_ context.Context, _ store.TaskState, in store.Intent) {
		if _, ok := in.(store.AddRecord); ok {
			close(entered)
			<-release
		}
	})

	// Hold dispatch so the fetched result has to queue behind a record intent.
	added := make(chan struct{})
	go func() {
		defer close(added)
		st.Dispatch(ctx, store.AddRecord{Description: "Buy milk", CreatedAt: time.Now()})
	}()
	<-entered

	close(source.gate)
	<-source.returned
	time.Sleep(20 * time.Millisecond)

	h.Cancel()
	close(release)
	<-added
	wait(t, h)

	got := st.State().Suggestions
	assert.Equal(t, domain.SuggestionsLoading, got.Status)
	assert.Empty(t, got.Items)
	assert.Len(t, st.State().Records, 1)
}
