package rawrecord

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Record is one raw persisted record: named fields over the closed primitive
// set. It owns nothing beyond the values themselves and is meant to be
// discarded once a validation pass has consumed it.
type Record map[string]Value

// Get returns the field's value, or an absent Value when the field was never
// present. This keeps schema code free of two-value map lookups.
func (r Record) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Absent()
}

// Has reports whether the store returned the field at all, null included.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Fields returns the names the store returned, in no particular order.
func (r Record) Fields() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	return names
}

// FromMap classifies a decoded key-value document into a Record. It accepts
// the value types that JSON, BSON, and SQL row decoding commonly produce and
// refuses everything else: an unclassifiable field means the store contract
// and the pipeline's expectations have diverged, which must surface as an
// error rather than a coerced value.
func FromMap(m map[string]any) (Record, error) {
	rec := make(Record, len(m))
	for name, raw := range m {
		v, err := Classify(raw)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		rec[name] = v
	}
	return rec, nil
}

// MustFromMap is a test convenience that panics on classification failure.
func MustFromMap(m map[string]any) Record {
	rec, err := FromMap(m)
	if err != nil {
		panic(err)
	}
	return rec
}

// Classify converts one decoded value into a Value of the closed kind set.
func Classify(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case float64:
		return Number(v), nil
	case float32:
		return Number(float64(v)), nil
	case int:
		return Number(float64(v)), nil
	case int32:
		return Number(float64(v)), nil
	case int64:
		return Number(float64(v)), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, errors.Join(ErrMalformedNumber, err)
		}
		return Number(f), nil
	case time.Time:
		return Time(v), nil
	case Value:
		return v, nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, raw)
	}
}
