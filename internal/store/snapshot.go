package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/careconnect/domain"
)

// HydrationPolicy decides how individual snapshot elements are checked before a
// snapshot replaces a collection.
type HydrationPolicy string

const (
	// HydrateLenient accepts every element of a well-formed array as it is. Fields
	// are read on a best-effort basis for display, and elements that do not match
	// the record shape are written back unchanged on the next save.
	HydrateLenient HydrationPolicy = "lenient"
	// HydrateStrict rejects the whole snapshot if any element is missing an id,
	// description or timestamp, carries a mistyped field, or repeats an id.
	HydrateStrict HydrationPolicy = "strict"
)

// ParseHydrationPolicy maps a config value onto a policy, defaulting to lenient.
func ParseHydrationPolicy(value string) HydrationPolicy {
	if strings.EqualFold(strings.TrimSpace(value), string(HydrateStrict)) {
		return HydrateStrict
	}
	return HydrateLenient
}

type snapshotRecord struct {
	ID          int    `json:"id" validate:"gte=1"`
	Description string `json:"description" validate:"required"`
	CreatedAt   string `json:"createdAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	IsCompleted bool   `json:"isCompleted"`
}

type snapshotDoc struct {
	Records []snapshotRecord `validate:"unique=ID,dive"`
}

var validate = validator.New()

// EncodeRecords serializes a full collection snapshot. An empty collection is
// written as [] so that it reads back as a sequence.
func EncodeRecords(records []domain.Record) (string, error) {
	if records == nil {
		records = []domain.Record{}
	}
	out, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return string(out), nil
}

// DecodeRecords parses raw into a collection. It returns domain.ErrNotSequence when
// raw is not a JSON array (including null), and domain.ErrInvalidSnapshot when the
// strict policy rejects an element.
func DecodeRecords(raw string, policy HydrationPolicy) ([]domain.Record, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domain.ErrNotSequence
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(trimmed, &elements); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrNotSequence.Message, err)
	}

	if policy == HydrateStrict {
		return decodeStrict(trimmed)
	}

	records := make([]domain.Record, 0, len(elements))
	for _, el := range elements {
		records = append(records, decodeLoose(el))
	}
	return records, nil
}

func decodeStrict(raw []byte) ([]domain.Record, error) {
	var doc snapshotDoc
	if err := json.Unmarshal(raw, &doc.Records); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidSnapshot.Message, err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidSnapshot.Message, err)
	}

	records := make([]domain.Record, 0, len(doc.Records))
	for _, r := range doc.Records {
		created, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidSnapshot.Message, err)
		}
		records = append(records, domain.Record{
			ID:          r.ID,
			Description: r.Description,
			CreatedAt:   created,
			IsCompleted: r.IsCompleted,
		})
	}
	return records, nil
}

// decodeLoose reads one element of a lenient snapshot. An element that does not
// match the record shape exactly is kept verbatim so that saving the collection
// writes it back unchanged. Its id is read the way a numeric string would compare,
// so "7" still counts towards the next id.
func decodeLoose(raw json.RawMessage) domain.Record {
	var record domain.Record
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return record.WithRaw(raw)
	}

	exact := len(fields) == 4
	exact = decodeID(fields, &record.ID) && exact
	exact = decodeField(fields, "description", &record.Description) && exact
	exact = decodeField(fields, "isCompleted", &record.IsCompleted) && exact

	var created string
	if decodeField(fields, "createdAt", &created) {
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			record.CreatedAt = t
		} else {
			exact = false
		}
	} else {
		exact = false
	}

	if !exact {
		return record.WithRaw(raw)
	}
	return record
}

func decodeID(fields map[string]json.RawMessage, dst *int) bool {
	if decodeField(fields, "id", dst) {
		return true
	}
	var text string
	if decodeField(fields, "id", &text) {
		if id, err := strconv.Atoi(strings.TrimSpace(text)); err == nil {
			*dst = id
		}
	}
	return false
}

func decodeField(fields map[string]json.RawMessage, name string, dst interface{}) bool {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// KeptVerbatim counts the records that are held as their original persisted element.
func KeptVerbatim(records []domain.Record) int {
	n := 0
	for _, r := range records {
		if r.Raw() != nil {
			n++
		}
	}
	return n
}
