package domain

import (
	"encoding/json"
	"time"
)

// Record is one logged activity or task entry. Activities and tasks share the shape
// but live in independent collections.
type Record struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	IsCompleted bool      `json:"isCompleted"`

	// raw is the persisted element this record was read from when it did not match
	// the record shape. It is written back instead of the typed fields.
	raw json.RawMessage
}

type recordFields Record

// WithRaw returns a copy of r that marshals as raw. The typed fields remain a
// best-effort reading used for display, ids and toggling.
func (r Record) WithRaw(raw json.RawMessage) Record {
	r.raw = append(json.RawMessage(nil), raw...)
	return r
}

// Raw returns the persisted element kept for r, or nil for a well-formed record.
func (r Record) Raw() json.RawMessage {
	return r.raw
}

// MarshalJSON writes a kept element unchanged and everything else field by field.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(recordFields(r))
}

// Toggled returns a copy of the record with the completion flag flipped. A kept
// element has only its isCompleted member replaced.
func (r Record) Toggled() Record {
	r.IsCompleted = !r.IsCompleted
	if len(r.raw) == 0 {
		return r
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.raw, &fields); err != nil || fields == nil {
		return r
	}
	flag, _ := json.Marshal(r.IsCompleted)
	fields["isCompleted"] = flag
	if patched, err := json.Marshal(fields); err == nil {
		r.raw = patched
	}
	return r
}

// StatusLabel is the display text for the completion flag.
func (r Record) StatusLabel() string {
	if r.IsCompleted {
		return "Completed"
	}
	return "Pending"
}
