package store

import (
	"time"

	"github.com/fastygo/careconnect/domain"
)

// Intent is a mutation request dispatched into a Store. Reducers switch on the
// concrete type; unknown intents leave state untouched.
type Intent interface {
	IntentName() string
}

// HydrateRecords replaces the whole collection with a previously persisted snapshot.
type HydrateRecords struct {
	Records []domain.Record
}

// AddRecord front-inserts a new record. CreatedAt is stamped by the caller so the
// reducer stays a pure function of its inputs.
type AddRecord struct {
	Description string
	CreatedAt   time.Time
}

// ToggleCompletion flips the completion flag of the record with ID.
type ToggleCompletion struct {
	ID int
}

// SuggestionsRequested starts a suggestion fetch identified by RequestID.
type SuggestionsRequested struct {
	RequestID uint64
}

// SuggestionsReceived completes the fetch identified by RequestID.
type SuggestionsReceived struct {
	RequestID uint64
	Items     []domain.Suggestion
}

// SuggestionsFailed terminates the fetch identified by RequestID with a display message.
type SuggestionsFailed struct {
	RequestID uint64
	Message   string
}

func (HydrateRecords) IntentName() string       { return "records/hydrate" }
func (AddRecord) IntentName() string            { return "records/add" }
func (ToggleCompletion) IntentName() string     { return "records/toggle" }
func (SuggestionsRequested) IntentName() string { return "suggestions/pending" }
func (SuggestionsReceived) IntentName() string  { return "suggestions/fulfilled" }
func (SuggestionsFailed) IntentName() string    { return "suggestions/rejected" }

// IsRecordIntent reports whether in targets the record collection rather than
// auxiliary state such as the suggestion lifecycle.
func IsRecordIntent(in Intent) bool {
	switch in.(type) {
	case HydrateRecords, AddRecord, ToggleCompletion:
		return true
	default:
		return false
	}
}
