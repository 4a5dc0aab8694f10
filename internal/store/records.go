package store

import (
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/domain"
)

// RecordState is an ordered record collection, newest first.
type RecordState struct {
	Records []domain.Record `json:"records"`
}

// Snapshot returns a copy of the collection that callers may modify.
func (s RecordState) Snapshot() []domain.Record {
	return cloneRecords(s.Records)
}

// Find returns the first record with id.
func (s RecordState) Find(id int) (domain.Record, bool) {
	for _, r := range s.Records {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Record{}, false
}

// NextID is one more than the highest id in records, or 1 for an empty collection.
// Ids are never reused while the collection lives because the maximum only grows.
func NextID(records []domain.Record) int {
	highest := 0
	for _, r := range records {
		if r.ID > highest {
			highest = r.ID
		}
	}
	return highest + 1
}

// ReduceRecords applies the record intents. Other intents are ignored.
func ReduceRecords(state RecordState, in Intent) (RecordState, bool) {
	switch in := in.(type) {
	case HydrateRecords:
		return RecordState{Records: cloneRecords(in.Records)}, true

	case AddRecord:
		record := domain.Record{
			ID:          NextID(state.Records),
			Description: in.Description,
			CreatedAt:   in.CreatedAt,
		}
		next := make([]domain.Record, 0, len(state.Records)+1)
		next = append(next, record)
		next = append(next, state.Records...)
		return RecordState{Records: next}, true

	case ToggleCompletion:
		for i, r := range state.Records {
			if r.ID != in.ID {
				continue
			}
			next := cloneRecords(state.Records)
			next[i] = r.Toggled()
			return RecordState{Records: next}, true
		}
		return state, false

	default:
		return state, false
	}
}

// NewRecordStore creates a record store seeded with a copy of seed.
func NewRecordStore(name string, seed []domain.Record, logger *zap.Logger) *Store[RecordState] {
	return New(name, RecordState{Records: cloneRecords(seed)}, ReduceRecords, logger)
}

func cloneRecords(in []domain.Record) []domain.Record {
	out := make([]domain.Record, len(in))
	copy(out, in)
	return out
}
