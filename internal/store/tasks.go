package store

import (
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
)

// SuggestionState tracks the suggestion fetch. Status is a single tag, so the
// lifecycle can never be loading and failed (or loading and loaded) at once.
type SuggestionState struct {
	Status    domain.SuggestionStatus `json:"status"`
	Items     []domain.Suggestion     `json:"items"`
	Error     string                  `json:"error,omitempty"`
	RequestID uint64                  `json:"-"`
}

// TaskState is the task collection plus the suggestion lifecycle.
type TaskState struct {
	RecordState
	Suggestions SuggestionState `json:"suggestions"`
}

// ReduceTasks applies suggestion intents to the sub-state and delegates everything
// else to ReduceRecords.
//
// Terminal suggestion intents are only applied while their RequestID is the pending
// one; a result from a superseded or abandoned fetch is dropped.
func ReduceTasks(state TaskState, in Intent) (TaskState, bool) {
	switch in := in.(type) {
	case SuggestionsRequested:
		state.Suggestions = SuggestionState{
			Status:    domain.SuggestionsLoading,
			Items:     state.Suggestions.Items,
			RequestID: in.RequestID,
		}
		return state, true

	case SuggestionsReceived:
		if !state.Suggestions.pending(in.RequestID) {
			return state, false
		}
		items := make([]domain.Suggestion, len(in.Items))
		copy(items, in.Items)
		state.Suggestions = SuggestionState{
			Status:    domain.SuggestionsLoaded,
			Items:     items,
			RequestID: in.RequestID,
		}
		return state, true

	case SuggestionsFailed:
		if !state.Suggestions.pending(in.RequestID) {
			return state, false
		}
		msg := in.Message
		if msg == "" {
			msg = domain.MsgSuggestionsUnavailable
		}
		state.Suggestions = SuggestionState{
			Status:    domain.SuggestionsFailed,
			Items:     state.Suggestions.Items,
			Error:     msg,
			RequestID: in.RequestID,
		}
		return state, true

	default:
		records, changed := ReduceRecords(state.RecordState, in)
		if !changed {
			return state, false
		}
		state.RecordState = records
		return state, true
	}
}

func (s SuggestionState) pending(id uint64) bool {
	return s.Status == domain.SuggestionsLoading && s.RequestID == id
}

// NewTaskStore creates an empty task store with an idle suggestion lifecycle.
func NewTaskStore(logger *zap.Logger) *Store[TaskState] {
	initial := TaskState{
		RecordState: RecordState{Records: []domain.Record{}},
		Suggestions: SuggestionState{Status: domain.SuggestionsIdle, Items: []domain.Suggestion{}},
	}
	return New("tasks", initial, ReduceTasks, logger)
}
