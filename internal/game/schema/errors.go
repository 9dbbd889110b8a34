// Package schema validates and normalizes raw character and item records.
//
// Raw records are nested map[string]any values as produced by decoding JSON
// or YAML. Validation coerces every field to its declared type, rounds
// integer fields, checks bounds and enum membership, and fills absent fields
// with their declared defaults.
package schema

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindTypeMismatch  Kind = "type-mismatch"
	KindOutOfRange    Kind = "out-of-range"
	KindInvalidChoice Kind = "invalid-choice"
)

// ValidationError reports one field that could not be normalized.
type ValidationError struct {
	Field  string // dotted path, e.g. "details.nex" or "items[2].slots"
	Kind   Kind
	Value  any
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Field, e.Kind, e.Reason)
}

// Errors returns every ValidationError contained in err, in field order of
// discovery. It returns nil when err holds none.
func Errors(err error) []*ValidationError {
	var out []*ValidationError
	for _, e := range multierr.Errors(err) {
		var ve *ValidationError
		if errors.As(e, &ve) {
			out = append(out, ve)
		}
	}
	return out
}

// FieldError returns the ValidationError for field contained in err, if any.
func FieldError(err error, field string) (*ValidationError, bool) {
	for _, ve := range Errors(err) {
		if ve.Field == field {
			return ve, true
		}
	}
	return nil, false
}
