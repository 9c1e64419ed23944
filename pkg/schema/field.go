package schema

import "time"

// FieldType is the closed set of shapes a field can declare.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeInt    FieldType = "int"
	TypeBool   FieldType = "bool"
	TypeTime   FieldType = "time"
	TypeURL    FieldType = "url"
	TypeEnum   FieldType = "enum"
)

// Presence declares what the store may legally return for a field. Every
// field states one of the three explicitly; there is no implicit mode.
type Presence string

const (
	// PresenceRequired means the field must be present and non-null.
	PresenceRequired Presence = "required"
	// PresenceOptional means the field may be absent, but if present it must
	// be non-null.
	PresenceOptional Presence = "optional"
	// PresenceNullable means the field may be absent or explicitly null.
	PresenceNullable Presence = "nullable"
)

// Field is the declarative spec for one record field. Constructors return
// required fields; chain Optional or Nullable to relax presence. The zero
// values of the constraint fields mean "no constraint".
type Field struct {
	Name     string
	Domain   string // domain-side name; empty means same as Name
	Type     FieldType
	Presence Presence
	Min      float64
	Max      float64
	HasRange bool
	MinLen   int
	MaxLen   int
	HasLen   bool
	Values   []string // legal values for TypeEnum
	Layout   string   // time layout for string-encoded TypeTime, RFC3339 if empty
}

// String declares a required string field.
func String(name string) Field {
	return Field{Name: name, Type: TypeString, Presence: PresenceRequired}
}

// Number declares a required floating-point field.
func Number(name string) Field {
	return Field{Name: name, Type: TypeNumber, Presence: PresenceRequired}
}

// Int declares a required integral field. Stores hand numbers back as
// floats, so integrality is checked, not assumed.
func Int(name string) Field {
	return Field{Name: name, Type: TypeInt, Presence: PresenceRequired}
}

// Bool declares a required boolean field.
func Bool(name string) Field {
	return Field{Name: name, Type: TypeBool, Presence: PresenceRequired}
}

// Time declares a required timestamp field, accepted either as a native
// timestamp or as a string in the field's layout.
func Time(name string) Field {
	return Field{Name: name, Type: TypeTime, Presence: PresenceRequired, Layout: time.RFC3339}
}

// URL declares a required string field that must parse as an absolute URL.
func URL(name string) Field {
	return Field{Name: name, Type: TypeURL, Presence: PresenceRequired}
}

// Enum declares a required string field restricted to the given values.
func Enum(name string, values ...string) Field {
	return Field{Name: name, Type: TypeEnum, Presence: PresenceRequired, Values: values}
}

// Required marks the field required and non-null. Constructors already
// default to this; the method exists for YAML round-trips and readability.
func (f Field) Required() Field {
	f.Presence = PresenceRequired
	return f
}

// Optional allows the field to be absent. Null is still a type mismatch.
func (f Field) Optional() Field {
	f.Presence = PresenceOptional
	return f
}

// Nullable allows the field to be absent or explicitly null.
func (f Field) Nullable() Field {
	f.Presence = PresenceNullable
	return f
}

// As translates the storage name to a domain name during the validation
// pass, so later stages never see storage naming.
func (f Field) As(domain string) Field {
	f.Domain = domain
	return f
}

// Range constrains a numeric field inclusively.
func (f Field) Range(min, max float64) Field {
	f.Min, f.Max, f.HasRange = min, max, true
	return f
}

// Length constrains a string field's length inclusively.
func (f Field) Length(min, max int) Field {
	f.MinLen, f.MaxLen, f.HasLen = min, max, true
	return f
}

// WithLayout sets the time layout used to parse string-encoded timestamps.
func (f Field) WithLayout(layout string) Field {
	f.Layout = layout
	return f
}

// domainName returns the name later stages address the field by.
func (f Field) domainName() string {
	if f.Domain != "" {
		return f.Domain
	}
	return f.Name
}
