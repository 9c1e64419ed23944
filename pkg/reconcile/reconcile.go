package reconcile

import (
	"fmt"
	"math"
)

// DefaultTolerance is the absolute delta under which a stored aggregate is
// considered consistent with its recomputed value.
const DefaultTolerance = 0.01

// State classifies one reconciliation.
type State string

const (
	// Consistent means the stored value agrees within tolerance.
	Consistent State = "consistent"
	// Corrected means the stored value drifted past tolerance but within the
	// correction ceiling and was replaced with the recomputed value.
	Corrected State = "corrected"
	// Flagged means the drift exceeded the ceiling (or corrections are
	// disabled); the stored value is kept and the case is surfaced for
	// operator follow-up. Flagged never rejects the record.
	Flagged State = "flagged"
)

// Result is the outcome of comparing one stored aggregate against its
// recomputed value. Value is the number the caller should carry forward:
// the recomputed value when Corrected, the stored value otherwise.
type Result struct {
	State    State
	Field    string
	Stored   float64
	Computed float64
	Delta    float64
}

// Value returns the aggregate the domain object should carry after
// reconciliation.
func (r Result) Value() float64 {
	if r.State == Corrected {
		return r.Computed
	}
	return r.Stored
}

func (r Result) String() string {
	return fmt.Sprintf("%s: stored %.4f vs computed %.4f (delta %.4f) -> %s", r.Field, r.Stored, r.Computed, r.Delta, r.State)
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithTolerance overrides the consistency tolerance. Non-positive values
// are ignored.
func WithTolerance(t float64) Option {
	return func(r *Reconciler) {
		if t > 0 {
			r.tolerance = t
		}
	}
}

// WithCeiling bounds how much drift may be silently corrected. Drift past
// the ceiling is flagged instead.
func WithCeiling(c float64) Option {
	return func(r *Reconciler) {
		if c > 0 {
			r.ceiling = c
			r.hasCeiling = true
		}
	}
}

// WithoutCorrection disables self-healing entirely: anything past
// tolerance is flagged and the stored value kept.
func WithoutCorrection() Option {
	return func(r *Reconciler) {
		r.noCorrection = true
	}
}

// WithField names the aggregate being reconciled, for diagnostics and
// monitor fingerprints.
func WithField(name string) Option {
	return func(r *Reconciler) {
		r.field = name
	}
}

// Reconciler compares stored aggregates against recomputed values under a
// fixed policy. It is stateless after construction and safe for concurrent
// use.
type Reconciler struct {
	field        string
	tolerance    float64
	ceiling      float64
	hasCeiling   bool
	noCorrection bool
}

// New builds a reconciler. Defaults: tolerance 0.01, corrections enabled
// and unbounded.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile compares one stored value against its recomputed counterpart.
func (r *Reconciler) Reconcile(stored, computed float64) Result {
	res := Result{
		Field:    r.field,
		Stored:   stored,
		Computed: computed,
		Delta:    math.Abs(stored - computed),
	}

	switch {
	case res.Delta <= r.tolerance:
		res.State = Consistent
	case r.noCorrection:
		res.State = Flagged
	case r.hasCeiling && res.Delta > r.ceiling:
		res.State = Flagged
	default:
		res.State = Corrected
	}
	return res
}
