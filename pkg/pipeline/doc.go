// Package pipeline runs raw persisted records through schema validation,
// single-pass transformation, business rules, and calculation
// reconciliation, resiliently: one bad record never invalidates the rest
// of its batch.
//
// A Processor binds together one schema, one transformer (the tail of the
// single validation pass, producing the domain object), any number of
// business rules (which may reject with critical severity but never mutate
// schema-guaranteed fields), and any number of reconcilers (which
// self-heal or flag numeric drift but never reject). Every per-record
// outcome is reported to an injected monitor.
//
// Processing is an explicit skip-on-error fold: each record is handled
// independently, accepted objects come back in input order, and failures
// are collected in a side list. No per-record condition escapes as a
// panic; a transformer blowing up is captured as a TransformationFailure,
// the one error class that indicates the schema and transformer have
// drifted apart rather than bad data. Under WithStrictInvariants (meant
// for development builds) that class aborts the batch loudly instead.
//
// # Usage
//
//	proc, err := pipeline.New(productSchema, transformProduct,
//	    pipeline.WithRules(preOrderCoherence),
//	    pipeline.WithMonitor(mon),
//	)
//	res, err := proc.Process(ctx, "products.load", records)
//	// res.Accepted - domain objects, input order
//	// res.Failures - structured per-record failures
//
// ProcessParallel fans the same fold across a bounded worker pool. Records
// are independent by contract, so the accepted/rejected set is identical
// to sequential processing; only wall-clock time changes.
package pipeline
