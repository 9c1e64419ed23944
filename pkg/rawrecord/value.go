package rawrecord

import (
	"fmt"
	"time"
)

// Kind identifies which member of the closed primitive set a Value holds.
type Kind uint8

const (
	// KindAbsent marks a field the store did not return at all.
	KindAbsent Kind = iota
	// KindNull marks a field the store returned as an explicit null.
	KindNull
	KindString
	KindNumber
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a tagged union over the closed primitive set. The zero Value is
// absent, which keeps lookups on missing fields well-defined.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

// Absent returns the value for a field the store never sent.
func Absent() Value { return Value{kind: KindAbsent} }

// Null returns the value for an explicit null.
func Null() Value { return Value{kind: KindNull} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind reports which member of the primitive set the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the field was missing from the raw record.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// IsNull reports whether the field was an explicit null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsMissing reports whether the field carries no payload at all, either
// because it was absent or because it was null.
func (v Value) IsMissing() bool { return v.kind == KindAbsent || v.kind == KindNull }

// StringVal returns the string payload. The second return is false when the
// value holds a different kind.
func (v Value) StringVal() (string, bool) {
	return v.str, v.kind == KindString
}

// NumberVal returns the numeric payload.
func (v Value) NumberVal() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// BoolVal returns the boolean payload.
func (v Value) BoolVal() (bool, bool) {
	return v.b, v.kind == KindBool
}

// TimeVal returns the timestamp payload.
func (v Value) TimeVal() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Interface returns the payload as an untyped value for diagnostics and
// provenance capture. Absent yields nil, the same as null; callers that
// need to distinguish the two use Kind.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindTime:
		return v.t
	default:
		return nil
	}
}

// GoString makes failed assertions in tests readable.
func (v Value) GoString() string {
	if v.IsMissing() {
		return v.kind.String()
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.Interface())
}
