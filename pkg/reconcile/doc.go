// Package reconcile compares stored aggregate values against the values
// they are derived from, within a fixed absolute tolerance.
//
// The policy is deliberately availability-first: a mismatch never rejects
// the record. Small drift (within tolerance) passes untouched, moderate
// drift (within the correction ceiling) is overwritten with the recomputed
// value, and large drift is flagged for operator follow-up while the
// stored value is returned as-is. Blocking an entire order over a
// fractional-cent disagreement is worse than healing it and logging.
//
// # Usage
//
//	r := reconcile.New() // tolerance 0.01, corrections unbounded
//	res := r.Reconcile(stored, computed)
//	switch res.State {
//	case reconcile.Consistent:
//	case reconcile.Corrected: // use res.Value (the recomputed one)
//	case reconcile.Flagged:   // keep stored, surface res.Delta
//	}
//
// Whether a ceiling should exist at all is a business decision, so it is a
// knob: WithCeiling bounds corrections, WithoutCorrection disables them
// entirely and flags everything past tolerance.
package reconcile
