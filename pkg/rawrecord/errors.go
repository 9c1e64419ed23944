package rawrecord

import "errors"

var (
	// ErrUnsupportedType is returned when a raw field holds a Go value outside
	// the closed primitive kind set.
	ErrUnsupportedType = errors.New("unsupported raw field type")

	// ErrMalformedNumber is returned when a numeric string (json.Number) cannot
	// be parsed as a float.
	ErrMalformedNumber = errors.New("malformed numeric value")
)
