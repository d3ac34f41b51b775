package variant

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// -- Validation & Input --
	ErrEmptyRequest  = errors.New("generation request has no attribute values")
	ErrTooManyCombos = errors.New("combination count exceeds the configured ceiling")
	ErrInvalidBatch  = errors.New("variant batch failed validation")

	// -- External store --
	ErrRateLimited     = errors.New("variant store rate limit hit")
	ErrSKUConflict     = errors.New("sku already exists for product")
	ErrVariantNotFound = errors.New("variant not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)

// IssueKind classifies one validation failure.
type IssueKind string

const (
	KindInvalidPrice     IssueKind = "INVALID_PRICE"
	KindDuplicateSKU     IssueKind = "DUPLICATE_SKU"
	KindBlankSKU         IssueKind = "BLANK_SKU"
	KindUnknownAttribute IssueKind = "UNKNOWN_ATTRIBUTE"
	KindNoAttributes     IssueKind = "NO_ATTRIBUTES"
)

// Issue pins one validation failure to the combination or data row
// that caused it. Index is 0-based for generated combinations and
// 1-based for imported rows (matching the file's data row numbers).
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Index   int       `json:"index"`
	Field   string    `json:"field,omitempty"`
	SKU     string    `json:"sku,omitempty"`
	Message string    `json:"message"`
}

// ValidationError aggregates every issue found in one batch. It is a
// value, not a panic: data-quality problems are expected and reported
// to the caller for user-facing presentation.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 1 {
		return fmt.Sprintf("variant validation failed: %s", e.Issues[0].Message)
	}
	kinds := make(map[IssueKind]int)
	for _, is := range e.Issues {
		kinds[is.Kind]++
	}
	parts := make([]string, 0, len(kinds))
	for k, n := range kinds {
		parts = append(parts, fmt.Sprintf("%s x%d", k, n))
	}
	return fmt.Sprintf("variant validation failed with %d issues (%s)",
		len(e.Issues), strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidBatch }

// AsValidationError unwraps err into a *ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
