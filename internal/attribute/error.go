package attribute

import "errors"

var (
	// -- Validation & Input --
	ErrEmptyName   = errors.New("attribute name cannot be empty")
	ErrInvalidType = errors.New("invalid attribute type")

	// -- Resource State --
	ErrAttributeNotFound = errors.New("attribute not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
