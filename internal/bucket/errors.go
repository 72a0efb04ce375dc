package bucket

import (
	"errors"
	"fmt"
)

// ErrInvalidBucket is returned (wrapped in a *ParseError) when a configured
// bucket label matches none of the supported syntaxes.
var ErrInvalidBucket = errors.New("invalid bucket definition")

// ParseError describes a bucket label that could not be parsed.
type ParseError struct {
	Label  string
	Field  string // "year" or "alpha"
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s bucket %q: %s", e.Field, e.Label, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidBucket
}

func yearError(label, format string, args ...interface{}) error {
	return &ParseError{Label: label, Field: "year", Reason: fmt.Sprintf(format, args...)}
}

func alphaError(label, format string, args ...interface{}) error {
	return &ParseError{Label: label, Field: "alpha", Reason: fmt.Sprintf(format, args...)}
}

// ErrNotAYear is returned when a year lookup receives non-numeric input.
var ErrNotAYear = errors.New("not a year")
