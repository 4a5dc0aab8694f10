package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/fastygo/careconnect/domain"
)

// Mounter is implemented by components that attach to the durable store while a
// view is mounted.
type Mounter interface {
	Mount(ctx context.Context)
	Unmount()
}

// NewRecordInput is what a view accepts before dispatching AddRecord.
type NewRecordInput struct {
	Description string `validate:"required"`
}

var validate = validator.New()

// NormalizeDescription trims raw and rejects an empty result with
// domain.ErrEmptyDescription. The stores never see an invalid description.
func NormalizeDescription(raw string) (string, error) {
	in := NewRecordInput{Description: strings.TrimSpace(raw)}
	if err := validate.Struct(in); err != nil {
		return "", domain.ErrEmptyDescription
	}
	return in.Description, nil
}

// Stamp returns the creation time for a new record: UTC with millisecond precision,
// matching what the persisted snapshot can represent.
func Stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Millisecond)
}
