package schema

import (
	"fmt"
	"math"
	"net/url"
	"slices"
	"time"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

// Schema is the structural contract for one record shape.
type Schema struct {
	name   string
	fields []Field
}

// New builds a schema, rejecting duplicate storage or domain names up
// front so a bad declaration fails at startup rather than per record.
func New(name string, fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySchema, name)
	}
	seenStorage := make(map[string]struct{}, len(fields))
	seenDomain := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !validFieldType(f.Type) {
			return nil, fmt.Errorf("%w: field %q declares %q", ErrUnknownFieldType, f.Name, f.Type)
		}
		if _, dup := seenStorage[f.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		if _, dup := seenDomain[f.domainName()]; dup {
			return nil, fmt.Errorf("%w: domain name %s", ErrDuplicateField, f.domainName())
		}
		seenStorage[f.Name] = struct{}{}
		seenDomain[f.domainName()] = struct{}{}
	}
	return &Schema{name: name, fields: fields}, nil
}

// Must builds a schema and panics on a bad declaration. Schemas are static
// configuration, so failing at startup is the right behavior.
func Must(name string, fields ...Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema's record-shape name.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared field specs.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// Validate checks one raw record against the contract and, in the same
// walk, produces the typed, domain-named values a transformer consumes.
// All field failures are collected; fields the record carries beyond the
// declared set are ignored, since stores are free to grow columns the
// application does not read.
func (s *Schema) Validate(rec rawrecord.Record) (Validated, error) {
	if rec == nil {
		return Validated{}, ErrNilRecord
	}

	values := make(map[string]rawrecord.Value, len(s.fields))
	var errs FieldErrors

	for _, f := range s.fields {
		v := rec.Get(f.Name)
		out, ferr := checkField(f, v)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		// Absent optional fields stay out of the value set entirely so the
		// transformer can tell "not sent" from "sent as null".
		if out.IsAbsent() {
			continue
		}
		values[f.domainName()] = out
	}

	if len(errs) > 0 {
		return Validated{}, errs
	}
	return Validated{schema: s.name, values: values, raw: rec}, nil
}

// checkField validates one field and returns its normalized value. A nil
// error with an absent value means the field legally stays out of the
// Validated.
func checkField(f Field, v rawrecord.Value) (rawrecord.Value, *FieldError) {
	switch {
	case v.IsAbsent():
		if f.Presence == PresenceRequired {
			return rawrecord.Value{}, &FieldError{
				Path:     f.Name,
				Class:    ClassMissingRequired,
				Expected: expectedShape(f),
				Received: "absent",
			}
		}
		return rawrecord.Absent(), nil

	case v.IsNull():
		if f.Presence != PresenceNullable {
			class := ClassTypeMismatch
			if f.Presence == PresenceRequired {
				class = ClassMissingRequired
			}
			return rawrecord.Value{}, &FieldError{
				Path:     f.Name,
				Class:    class,
				Expected: expectedShape(f),
				Received: "null",
			}
		}
		return rawrecord.Null(), nil
	}

	switch f.Type {
	case TypeString:
		return checkString(f, v)
	case TypeNumber:
		return checkNumber(f, v, false)
	case TypeInt:
		return checkNumber(f, v, true)
	case TypeBool:
		if _, ok := v.BoolVal(); !ok {
			return rawrecord.Value{}, mismatch(f, v)
		}
		return v, nil
	case TypeTime:
		return checkTime(f, v)
	case TypeURL:
		return checkURL(f, v)
	case TypeEnum:
		return checkEnum(f, v)
	default:
		// New guards the type set; reaching here is a programming error.
		return rawrecord.Value{}, mismatch(f, v)
	}
}

func checkString(f Field, v rawrecord.Value) (rawrecord.Value, *FieldError) {
	s, ok := v.StringVal()
	if !ok {
		return rawrecord.Value{}, mismatch(f, v)
	}
	if f.HasLen && (len(s) < f.MinLen || len(s) > f.MaxLen) {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassOutOfRange,
			Expected: fmt.Sprintf("length %d..%d", f.MinLen, f.MaxLen),
			Received: fmt.Sprintf("length %d", len(s)),
			Raw:      s,
		}
	}
	return v, nil
}

func checkNumber(f Field, v rawrecord.Value, integral bool) (rawrecord.Value, *FieldError) {
	n, ok := v.NumberVal()
	if !ok {
		return rawrecord.Value{}, mismatch(f, v)
	}
	if integral && n != math.Trunc(n) {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassTypeMismatch,
			Expected: "integer",
			Received: fmt.Sprintf("number %v", n),
			Raw:      n,
		}
	}
	if f.HasRange && (n < f.Min || n > f.Max) {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassOutOfRange,
			Expected: fmt.Sprintf("%v..%v", f.Min, f.Max),
			Received: fmt.Sprintf("%v", n),
			Raw:      n,
		}
	}
	return v, nil
}

func checkTime(f Field, v rawrecord.Value) (rawrecord.Value, *FieldError) {
	if _, ok := v.TimeVal(); ok {
		return v, nil
	}
	s, ok := v.StringVal()
	if !ok {
		return rawrecord.Value{}, mismatch(f, v)
	}
	layout := f.Layout
	if layout == "" {
		layout = time.RFC3339
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassMalformedFormat,
			Expected: "timestamp (" + layout + ")",
			Received: fmt.Sprintf("%q", s),
			Raw:      s,
		}
	}
	return rawrecord.Time(t), nil
}

func checkURL(f Field, v rawrecord.Value) (rawrecord.Value, *FieldError) {
	s, ok := v.StringVal()
	if !ok {
		return rawrecord.Value{}, mismatch(f, v)
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassMalformedFormat,
			Expected: "absolute url",
			Received: fmt.Sprintf("%q", s),
			Raw:      s,
		}
	}
	return v, nil
}

func checkEnum(f Field, v rawrecord.Value) (rawrecord.Value, *FieldError) {
	s, ok := v.StringVal()
	if !ok {
		return rawrecord.Value{}, mismatch(f, v)
	}
	if !slices.Contains(f.Values, s) {
		return rawrecord.Value{}, &FieldError{
			Path:     f.Name,
			Class:    ClassInvalidEnum,
			Expected: fmt.Sprintf("one of %v", f.Values),
			Received: fmt.Sprintf("%q", s),
			Raw:      s,
		}
	}
	return v, nil
}

func mismatch(f Field, v rawrecord.Value) *FieldError {
	return &FieldError{
		Path:     f.Name,
		Class:    ClassTypeMismatch,
		Expected: expectedShape(f),
		Received: v.Kind().String(),
		Raw:      v.Interface(),
	}
}

func expectedShape(f Field) string {
	shape := string(f.Type)
	switch f.Presence {
	case PresenceNullable:
		return shape + " or null"
	case PresenceOptional:
		return shape + " (optional)"
	default:
		return shape
	}
}

func validFieldType(t FieldType) bool {
	switch t {
	case TypeString, TypeNumber, TypeInt, TypeBool, TypeTime, TypeURL, TypeEnum:
		return true
	default:
		return false
	}
}
