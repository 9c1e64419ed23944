// Package rawrecord models untrusted persisted records as values over a
// closed set of primitive kinds, so that downstream schema validation can
// match exhaustively on what a field can be instead of type-switching over
// an open map[string]any.
//
// A Record is a flat collection of named Values. Each Value is exactly one
// of: a string, a number, a boolean, a timestamp, an explicit null, or
// absent. Null and absent are distinct states on purpose - a store that
// returns "field": null is making a different statement than a store that
// omits the field, and schemas treat the two differently.
//
// Records are transient by contract: they are built from whatever the
// persistence collaborator returned (decoded JSON, BSON documents, SQL
// rows), consumed by a single validation pass, and never retained.
//
// # Usage
//
//	rec, err := rawrecord.FromMap(map[string]any{
//	    "name":           "Heirloom Tomatoes",
//	    "price":          4.50,
//	    "is_pre_order":   nil,
//	    "stock_quantity": int64(12),
//	})
//	if err != nil {
//	    // a field held a Go type outside the closed kind set
//	}
//	v := rec.Get("price") // Value of KindNumber
//
// FromMap never coerces silently: a value whose Go type falls outside the
// closed set produces ErrUnsupportedType naming the field, because a store
// returning an unexpected shape is exactly the condition the pipeline
// exists to surface.
package rawrecord
