package tabular

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTable is the root of the codec's hard failures. All
	// soft problems (bad numbers, missing optional cells) degrade to
	// defaults instead.
	ErrMalformedTable = errors.New("malformed table")

	ErrEmptyTable        = fmt.Errorf("%w: need a header row and at least one data row", ErrMalformedTable)
	ErrUnterminatedQuote = fmt.Errorf("%w: unterminated quoted field", ErrMalformedTable)
)
