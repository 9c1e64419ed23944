// Package source fetches raw records from the persistence collaborators
// the pipeline sits behind. The pipeline itself never queries a store; it
// consumes whatever these adapters hand it and hands back validated
// domain objects or structured failures.
//
// Two backends are supported, matching how the application's data is laid
// out: Postgres tables (products, carts, orders, payments) through pgx,
// and Mongo collections for document-shaped exports. Both decode query
// results into rawrecord.Record batches without interpreting them - shape
// judgment is the schema package's job, so an unclassifiable column value
// is reported as an error, never coerced.
//
// # Usage
//
//	pool, err := source.ConnectPostgres(ctx, cfg)
//	src := source.NewPostgresSource(pool)
//	recs, err := src.Fetch(ctx, "SELECT * FROM products WHERE vendor_id = $1", vendorID)
//	res, err := proc.Process(ctx, "products.load", recs)
//
// Connection configs are env-tagged structs loaded with the config
// package; retry-with-backoff connecting keeps startup resilient to
// transient store unavailability.
package source
