package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/careconnect/domain"
)

func TestEncodeRecordsRoundTrip(t *testing.T) {
	records := []domain.Record{
		{ID: 2, Description: "Nap", CreatedAt: time.Date(2025, 11, 19, 13, 0, 0, 0, time.UTC), IsCompleted: true},
		{ID: 1, Description: "Breakfast", CreatedAt: t0},
	}

	raw, err := EncodeRecords(records)
	require.NoError(t, err)

	for _, policy := range []HydrationPolicy{HydrateLenient, HydrateStrict} {
		got, err := DecodeRecords(raw, policy)
		require.NoError(t, err, policy)
		assert.Equal(t, records, got, policy)
	}
}

func TestEncodeRecordsEmpty(t *testing.T) {
	raw, err := EncodeRecords(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	got, err := DecodeRecords(raw, HydrateLenient)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDecodeRecordsRejectsNonSequence(t *testing.T) {
	inputs := []string{``, `   `, `null`, `{"id":1}`, `"text"`, `42`, `[1,2`}
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			_, err := DecodeRecords(raw, HydrateLenient)
			require.Error(t, err)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
		})
	}
}

func TestDecodeRecordsLenientAcceptsLooseElements(t *testing.T) {
	raw := `[{"id":3,"description":"ok","createdAt":"2025-11-19T08:00:00.000Z","isCompleted":true},
		{"id":"x","description":7},
		null]`

	got, err := DecodeRecords(raw, HydrateLenient)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.Record{ID: 3, Description: "ok", CreatedAt: t0, IsCompleted: true}, got[0])
	assert.Nil(t, got[0].Raw())
	assert.Equal(t, 0, got[1].ID)
	assert.JSONEq(t, `{"id":"x","description":7}`, string(got[1].Raw()))
	assert.Equal(t, "null", string(got[2].Raw()))
	assert.Equal(t, 2, KeptVerbatim(got))
}

func TestLenientSnapshotWritesElementsBackAsStored(t *testing.T) {
	doctor := `{"id":"7","description":"Doctor","createdAt":"2025-11-19T08:00:00Z","isCompleted":true}`
	broken := `{"id":2,"description":"Nap","createdAt":"yesterday","isCompleted":false}`
	raw := `[` + doctor + `,` + broken + `,null]`

	records, err := DecodeRecords(raw, HydrateLenient)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 7, records[0].ID)
	assert.Equal(t, "Doctor", records[0].Description)
	assert.Equal(t, 2, records[1].ID)

	state, _ := ReduceRecords(RecordState{Records: records}, AddRecord{Description: "Lunch", CreatedAt: t0})
	assert.Equal(t, 8, state.Records[0].ID)

	out, err := EncodeRecords(state.Records)
	require.NoError(t, err)

	var elements []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &elements))
	require.Len(t, elements, 4)
	assert.JSONEq(t, `{"id":8,"description":"Lunch","createdAt":"2025-11-19T08:00:00Z","isCompleted":false}`, string(elements[0]))
	assert.JSONEq(t, doctor, string(elements[1]))
	assert.JSONEq(t, broken, string(elements[2]))
	assert.Equal(t, "null", string(elements[3]))
}

func TestLenientToggleOnlyPatchesCompletion(t *testing.T) {
	raw := `[{"id":"7","description":"Doctor","createdAt":"2025-11-19T08:00:00Z","isCompleted":true,"note":"bring card"}]`
	records, err := DecodeRecords(raw, HydrateLenient)
	require.NoError(t, err)

	state, changed := ReduceRecords(RecordState{Records: records}, ToggleCompletion{ID: 7})
	require.True(t, changed)
	assert.False(t, state.Records[0].IsCompleted)

	out, err := EncodeRecords(state.Records)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"7","description":"Doctor","createdAt":"2025-11-19T08:00:00Z","isCompleted":false,"note":"bring card"}]`, out)
}

func TestLenientNullFieldsAreKept(t *testing.T) {
	records, err := DecodeRecords(`[{"id":null,"description":"a","createdAt":"2025-11-19T08:00:00Z","isCompleted":false}]`, HydrateLenient)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotNil(t, records[0].Raw())
}

func TestDecodeRecordsStrict(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: `[{"id":1,"description":"a","createdAt":"2025-11-19T08:00:00.000Z","isCompleted":false}]`},
		{name: "empty array", raw: `[]`},
		{name: "missing id", raw: `[{"description":"a","createdAt":"2025-11-19T08:00:00Z"}]`, wantErr: true},
		{name: "empty description", raw: `[{"id":1,"description":"","createdAt":"2025-11-19T08:00:00Z"}]`, wantErr: true},
		{name: "bad timestamp", raw: `[{"id":1,"description":"a","createdAt":"yesterday"}]`, wantErr: true},
		{name: "mistyped id", raw: `[{"id":"1","description":"a","createdAt":"2025-11-19T08:00:00Z"}]`, wantErr: true},
		{name: "duplicate ids", raw: `[{"id":1,"description":"a","createdAt":"2025-11-19T08:00:00Z"},{"id":1,"description":"b","createdAt":"2025-11-19T08:00:00Z"}]`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords(tt.raw, HydrateStrict)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestParseHydrationPolicy(t *testing.T) {
	assert.Equal(t, HydrateStrict, ParseHydrationPolicy(" STRICT "))
	assert.Equal(t, HydrateLenient, ParseHydrationPolicy("lenient"))
	assert.Equal(t, HydrateLenient, ParseHydrationPolicy(""))
	assert.Equal(t, HydrateLenient, ParseHydrationPolicy("other"))
}
