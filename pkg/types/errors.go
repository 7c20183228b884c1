package types

import "errors"

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is not attached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Record and row operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid reference identifier")
	ErrInvalidData   = errors.New("invalid record data")
	ErrUnknownEntity = errors.New("entity not declared in schema")
)

// Structural violations. Operations that hit one of these abort; the
// document and identity map must not be assumed consistent for that
// operation afterward.
var (
	ErrAmbiguousToOne      = errors.New("to-one relationship holds more than one link")
	ErrDuplicateIdentifier = errors.New("duplicate reference identifier")
	ErrIdentifierExhausted = errors.New("identifier space exhausted")
)

// Value coercion errors.
var (
	ErrUnknownValueType = errors.New("unknown value type")
)
