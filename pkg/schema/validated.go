package schema

import (
	"time"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

// Validated is the product of one validation pass: typed values addressed
// by domain name, plus the raw record for provenance capture. It is only
// ever constructed by Schema.Validate, which is what lets transformers
// skip re-checking shapes.
type Validated struct {
	schema string
	values map[string]rawrecord.Value
	raw    rawrecord.Record
}

// Schema returns the name of the schema that produced this value.
func (v Validated) Schema() string { return v.schema }

// Raw returns the underlying raw record for provenance capture. The record
// must not be retained past the transform.
func (v Validated) Raw() rawrecord.Record { return v.raw }

// Has reports whether the field carries a payload: false for fields that
// were absent or null.
func (v Validated) Has(domain string) bool {
	val, ok := v.values[domain]
	return ok && !val.IsMissing()
}

// IsNull reports whether the store sent the field as an explicit null.
func (v Validated) IsNull(domain string) bool {
	val, ok := v.values[domain]
	return ok && val.IsNull()
}

// String returns the field's string payload; ok is false when the field
// was absent or null.
func (v Validated) String(domain string) (string, bool) {
	return v.values[domain].StringVal()
}

// Number returns the field's numeric payload.
func (v Validated) Number(domain string) (float64, bool) {
	return v.values[domain].NumberVal()
}

// Int returns the field's integral payload. The schema already verified
// integrality, so the truncation is lossless.
func (v Validated) Int(domain string) (int, bool) {
	n, ok := v.values[domain].NumberVal()
	return int(n), ok
}

// Bool returns the field's boolean payload.
func (v Validated) Bool(domain string) (bool, bool) {
	return v.values[domain].BoolVal()
}

// Time returns the field's timestamp payload, normalized during the
// validation pass regardless of whether the store sent a native timestamp
// or an encoded string.
func (v Validated) Time(domain string) (time.Time, bool) {
	return v.values[domain].TimeVal()
}

// StringOr returns the payload or the given default. Defaults live here,
// on the consumer side, strictly after validation has succeeded.
func (v Validated) StringOr(domain, def string) string {
	if s, ok := v.String(domain); ok {
		return s
	}
	return def
}

// NumberOr returns the payload or the given default.
func (v Validated) NumberOr(domain string, def float64) float64 {
	if n, ok := v.Number(domain); ok {
		return n
	}
	return def
}

// IntOr returns the payload or the given default.
func (v Validated) IntOr(domain string, def int) int {
	if n, ok := v.Int(domain); ok {
		return n
	}
	return def
}

// BoolOr returns the payload or the given default.
func (v Validated) BoolOr(domain string, def bool) bool {
	if b, ok := v.Bool(domain); ok {
		return b
	}
	return def
}
