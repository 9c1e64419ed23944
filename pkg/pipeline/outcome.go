package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/farmstand/recordkit/pkg/schema"
)

// Error classes the pipeline adds on top of the schema's structural set.
const (
	// ClassBusinessRule marks a structurally valid object that failed a
	// domain legality check. Surfaced as critical severity.
	ClassBusinessRule schema.ErrorClass = "business_rule_violation"

	// ClassTransformation marks a transformer failure on a validated record,
	// a programming-error class rather than a data-quality one.
	ClassTransformation schema.ErrorClass = "transformation_failure"

	// ClassDiscrepancy marks a reconciliation drift too large to correct.
	// It never rejects; it only appears in monitor fingerprints.
	ClassDiscrepancy schema.ErrorClass = "calculation_discrepancy"
)

// State tags one record's outcome.
type State string

const (
	StateAccepted  State = "accepted"
	StateRejected  State = "rejected"
	StateCorrected State = "corrected"
)

// Failure is the structured record of one rejection: the offending field
// path, the error class, and the raw value that caused it.
type Failure struct {
	Key       string // record identifying key, when the schema exposes one
	FieldPath string
	Class     schema.ErrorClass
	Reason    string
	Raw       any
	Critical  bool
}

func (f Failure) Error() string {
	if f.Key != "" {
		return fmt.Sprintf("record %s: %s: %s", f.Key, f.FieldPath, f.Reason)
	}
	return fmt.Sprintf("%s: %s", f.FieldPath, f.Reason)
}

// Fingerprint returns the path+class signature the monitor aggregates on.
func (f Failure) Fingerprint() string {
	return f.FieldPath + ": " + string(f.Class)
}

// Correction records one aggregate field the reconciler overwrote.
type Correction struct {
	Field   string
	Stored  float64
	Applied float64
	Delta   float64
}

// Violation is a business rule's rejection of a transformed object.
type Violation struct {
	Field  string
	Reason string
}

// Provenance ties an accepted object back to its origin record so drift
// can be debugged without re-querying the store.
type Provenance struct {
	BatchID    uuid.UUID
	Operation  string
	Key        string
	ReceivedAt time.Time
	RawFields  map[string]any
}

// Outcome is the tagged per-record result. Exactly one of the payloads is
// meaningful for a given state: Object for accepted and corrected (with
// Corrections listing what was healed), Failure for rejected.
type Outcome[T any] struct {
	State       State
	Object      T
	Failure     *Failure
	Corrections []Correction
	Provenance  *Provenance
}

// BatchResult is what one Process call hands back. Accepted preserves the
// input order of the records that survived; Failures carries one entry per
// rejected record, order not significant; Outcomes has one entry per input
// record in input order for callers that need corrections or provenance.
type BatchResult[T any] struct {
	Accepted []T
	Failures []Failure
	Outcomes []Outcome[T]
}
