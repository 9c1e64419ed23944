package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlSchema mirrors the declarative YAML document shape. Presence defaults
// to required when omitted, matching the Field constructors.
type yamlSchema struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name     string    `yaml:"name"`
	As       string    `yaml:"as"`
	Type     FieldType `yaml:"type"`
	Presence Presence  `yaml:"presence"`
	Min      *float64  `yaml:"min"`
	Max      *float64  `yaml:"max"`
	MinLen   *int      `yaml:"min_len"`
	MaxLen   *int      `yaml:"max_len"`
	Values   []string  `yaml:"values"`
	Layout   string    `yaml:"layout"`
}

// ParseYAML loads a schema from its declarative YAML form:
//
//	name: products
//	fields:
//	  - name: stock_quantity
//	    type: int
//	    min: 0
//	    max: 1000000
//	  - name: is_pre_order
//	    type: bool
//	    presence: nullable
//	    as: preOrder
//
// The loaded schema goes through the same New checks as one declared in
// code, so a bad document fails at load time.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yamlSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema yaml: %w", err)
	}
	if doc.Name == "" {
		return nil, errors.New("schema yaml: missing name")
	}

	fields := make([]Field, 0, len(doc.Fields))
	for _, yf := range doc.Fields {
		if yf.Name == "" {
			return nil, fmt.Errorf("schema yaml %q: field with no name", doc.Name)
		}
		f := Field{
			Name:   yf.Name,
			Domain: yf.As,
			Type:   yf.Type,
			Values: yf.Values,
			Layout: yf.Layout,
		}
		switch yf.Presence {
		case "", PresenceRequired:
			f.Presence = PresenceRequired
		case PresenceOptional, PresenceNullable:
			f.Presence = yf.Presence
		default:
			return nil, fmt.Errorf("schema yaml %q: field %q: unknown presence %q", doc.Name, yf.Name, yf.Presence)
		}
		if yf.Min != nil || yf.Max != nil {
			if yf.Min == nil || yf.Max == nil {
				return nil, fmt.Errorf("schema yaml %q: field %q: min and max must both be set", doc.Name, yf.Name)
			}
			f = f.Range(*yf.Min, *yf.Max)
		}
		if yf.MinLen != nil || yf.MaxLen != nil {
			if yf.MinLen == nil || yf.MaxLen == nil {
				return nil, fmt.Errorf("schema yaml %q: field %q: min_len and max_len must both be set", doc.Name, yf.Name)
			}
			f = f.Length(*yf.MinLen, *yf.MaxLen)
		}
		fields = append(fields, f)
	}

	return New(doc.Name, fields...)
}
