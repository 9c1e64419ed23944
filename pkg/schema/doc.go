// Package schema declares the structural contract for one raw record shape
// and validates records against it in a single pass.
//
// A Schema is a named list of Field specs. Each Field states the storage
// name, the primitive type, and - always explicitly - the presence mode:
// required, optional, or nullable. Presence is the load-bearing part of the
// contract: a schema that is silently stricter than what the store actually
// returns produces spurious rejections, so every field the store can
// legally return must be classified.
//
// Validation and extraction are one walk. The same pass that checks a
// field's shape also produces its normalized typed value (numbers parsed,
// string-encoded timestamps decoded, storage names translated to domain
// names), collected into a Validated that transformers consume directly.
// There is no second parse with different expectations, and the schema
// never applies defaults - a nullable field that arrived null stays null in
// the Validated, and whoever builds the domain object decides what null
// means.
//
// # Usage
//
//	products := schema.Must("products",
//	    schema.String("name").Required().Length(1, 200),
//	    schema.Number("price").Required().Range(0, 100000),
//	    schema.Int("stock_quantity").Required().Range(0, 1e9),
//	    schema.Bool("is_pre_order").Nullable().As("preOrder"),
//	    schema.Int("min_pre_order_quantity").Nullable(),
//	)
//
//	validated, err := products.Validate(rec)
//	if err != nil {
//	    var ferrs schema.FieldErrors
//	    errors.As(err, &ferrs) // every failing field with exact path and class
//	}
//
// Schemas can also be declared in YAML and loaded with ParseYAML, so a
// record shape can ship as configuration next to the store contract it
// mirrors.
//
// All failures for a record are collected, not short-circuited, and each
// one names the exact field path plus an error class suitable for
// fingerprinting (for example "min_pre_order_quantity: type_mismatch").
package schema
