// Package commerce defines the farm-stand domain objects - products, cart
// items, orders, payments - together with the schemas, transformers,
// business rules, and reconcilers that produce them from raw store
// records.
//
// Domain objects are only ever constructed by their transformers; nothing
// else in the system builds one by hand. Each record shape gets:
//
//   - a Schema mirroring the store's actual contract, snake_case storage
//     names translated to domain names in the validation pass, with
//     nullability declared exactly as the store behaves (the store leaves
//     pre-order columns null for ordinary products, so they are nullable
//     here, not optional-and-hope);
//   - a Transformer applying defaults strictly after validation (a null
//     is_pre_order becomes false in the transform, never in the schema);
//   - business rules for legality beyond shape: order and payment status
//     changes must follow the legal-successor tables, derived category
//     references must agree with their source of truth, pre-order bounds
//     must cohere;
//   - reconcilers for stored aggregates: cart line totals, order subtotals
//     and totals, checked against their constituents and self-healed or
//     flagged per the reconcile package's policy.
//
// The New*Processor constructors assemble ready-to-use pipeline processors
// for each shape, all reporting to one injected monitor.
package commerce
