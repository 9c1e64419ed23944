package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptySchema is returned when a schema is declared without fields.
	ErrEmptySchema = errors.New("schema has no fields")

	// ErrDuplicateField is returned when two fields share a storage or domain name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrUnknownFieldType is returned for a field type outside the closed set.
	ErrUnknownFieldType = errors.New("unknown field type")

	// ErrNilRecord is returned when Validate is handed a nil record.
	ErrNilRecord = errors.New("nil raw record")
)

// ErrorClass buckets field failures into stable categories used for
// rejection fingerprinting. The set is closed: monitoring relies on class
// values not growing ad hoc.
type ErrorClass string

const (
	ClassMissingRequired ErrorClass = "missing_required"
	ClassTypeMismatch    ErrorClass = "type_mismatch"
	ClassOutOfRange      ErrorClass = "out_of_range"
	ClassMalformedFormat ErrorClass = "malformed_format"
	ClassInvalidEnum     ErrorClass = "invalid_enum"
)

// FieldError describes one failing field: the exact path, the class, and
// the expected-vs-received shapes for diagnostics.
type FieldError struct {
	Path     string
	Class    ErrorClass
	Expected string
	Received string
	Raw      any
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (expected %s, received %s)", e.Path, e.Class, e.Expected, e.Received)
}

// Fingerprint returns the stable path+class signature used by the monitor
// to detect recurring schema drift.
func (e FieldError) Fingerprint() string {
	return e.Path + ": " + string(e.Class)
}

// FieldErrors aggregates every failing field of one record.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "record validation failed"
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Error()
	}
	return "record validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any error names the given field path.
func (fe FieldErrors) Has(path string) bool {
	for _, e := range fe {
		if e.Path == path {
			return true
		}
	}
	return false
}

// First returns the first error; validation never produces an empty slice.
func (fe FieldErrors) First() FieldError {
	if len(fe) == 0 {
		return FieldError{}
	}
	return fe[0]
}

// AsFieldErrors extracts FieldErrors from an error chain, or nil.
func AsFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe
	}
	return nil
}
