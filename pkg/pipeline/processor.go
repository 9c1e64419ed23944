package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/rawrecord"
	"github.com/farmstand/recordkit/pkg/reconcile"
	"github.com/farmstand/recordkit/pkg/schema"
)

// Transformer maps one validated record to its domain object. It is the
// tail of the single validation pass: the Validated it receives already
// carries typed, domain-named values, so the transformer never re-checks
// shapes. An error here means the transformer and the schema disagree
// about the contract, not that the data is bad.
type Transformer[T any] func(schema.Validated) (T, error)

// Rule is a post-transformation legality check. It may pass the object
// through, enrich it, or reject it by returning a Violation. Rules must
// not alter fields the schema already guaranteed.
type Rule[T any] func(T) (T, *Violation)

// Reconciler recomputes an object's derived aggregates and compares them
// to stored values. It returns the possibly-corrected object plus one
// reconcile.Result per aggregate checked; it never rejects.
type Reconciler[T any] func(T) (T, []reconcile.Result)

// Option configures a Processor.
type Option[T any] func(*Processor[T])

// WithRules appends business rules, applied in order after the transform.
func WithRules[T any](rules ...Rule[T]) Option[T] {
	return func(p *Processor[T]) {
		p.rules = append(p.rules, rules...)
	}
}

// WithReconcilers appends calculation reconcilers, applied after rules.
func WithReconcilers[T any](recs ...Reconciler[T]) Option[T] {
	return func(p *Processor[T]) {
		p.reconcilers = append(p.reconcilers, recs...)
	}
}

// WithMonitor injects the outcome aggregator. Without one, outcomes are
// simply not recorded, which keeps isolated unit tests quiet.
func WithMonitor[T any](m *monitor.Monitor) Option[T] {
	return func(p *Processor[T]) {
		p.monitor = m
	}
}

// WithLogger overrides the logger used for transformation failures.
func WithLogger[T any](log *slog.Logger) Option[T] {
	return func(p *Processor[T]) {
		if log != nil {
			p.log = log
		}
	}
}

// WithKeyField names the raw field carrying the record's identifying key,
// attached to failures and provenance for traceability.
func WithKeyField[T any](name string) Option[T] {
	return func(p *Processor[T]) {
		p.keyField = name
	}
}

// WithProvenance captures origin field values and a batch ID on every
// accepted outcome.
func WithProvenance[T any]() Option[T] {
	return func(p *Processor[T]) {
		p.provenance = true
	}
}

// WithStrictInvariants makes a transformation failure abort the batch with
// ErrInvariantViolation instead of skipping the record. Meant for
// development builds, where schema/transformer drift should be fatal.
func WithStrictInvariants[T any]() Option[T] {
	return func(p *Processor[T]) {
		p.strict = true
	}
}

// Processor drives batches of raw records through the full pipeline for
// one record shape. It is immutable after construction and safe for
// concurrent use.
type Processor[T any] struct {
	schema      *schema.Schema
	transform   Transformer[T]
	rules       []Rule[T]
	reconcilers []Reconciler[T]
	monitor     *monitor.Monitor
	log         *slog.Logger
	keyField    string
	provenance  bool
	strict      bool
}

// New builds a processor for one schema/transformer pair.
func New[T any](s *schema.Schema, transform Transformer[T], opts ...Option[T]) (*Processor[T], error) {
	if s == nil {
		return nil, ErrNilSchema
	}
	if transform == nil {
		return nil, ErrNilTransformer
	}
	p := &Processor[T]{
		schema:    s,
		transform: transform,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Process runs the batch sequentially. Records are handled independently:
// a failing record is routed to the failure list and the monitor, and the
// fold moves on. Accepted objects preserve input order. The returned error
// is nil except for strict-mode invariant violations; validation itself
// runs to completion and is never cancelled mid-batch.
func (p *Processor[T]) Process(ctx context.Context, op string, recs []rawrecord.Record) (BatchResult[T], error) {
	_ = ctx // reserved for parity with ProcessParallel; the fold is pure CPU

	batchID := uuid.New()
	outcomes := make([]Outcome[T], len(recs))
	for i, rec := range recs {
		outcomes[i] = p.processOne(op, batchID, rec)
		if p.strict && outcomes[i].State == StateRejected && outcomes[i].Failure.Class == ClassTransformation {
			return p.fold(outcomes[:i+1]), fmt.Errorf("%w: %s", ErrInvariantViolation, outcomes[i].Failure.Reason)
		}
	}
	return p.fold(outcomes), nil
}

// processOne takes a single record through validation, transformation,
// rules, and reconciliation, reporting the outcome to the monitor.
func (p *Processor[T]) processOne(op string, batchID uuid.UUID, rec rawrecord.Record) Outcome[T] {
	key := p.recordKey(rec)

	validated, err := p.schema.Validate(rec)
	if err != nil {
		return p.reject(op, structuralFailure(key, err))
	}

	obj, err := p.runTransform(validated)
	if err != nil {
		p.log.Error("transformer failed on validated record",
			slog.String("operation", op),
			slog.String("schema", p.schema.Name()),
			slog.String("record_key", key),
			slog.Any("error", err),
		)
		return p.reject(op, Failure{
			Key:       key,
			FieldPath: p.schema.Name(),
			Class:     ClassTransformation,
			Reason:    err.Error(),
			Critical:  true,
		})
	}

	for _, rule := range p.rules {
		next, violation := rule(obj)
		if violation != nil {
			return p.reject(op, Failure{
				Key:       key,
				FieldPath: violation.Field,
				Class:     ClassBusinessRule,
				Reason:    violation.Reason,
				Critical:  true,
			})
		}
		obj = next
	}

	var corrections []Correction
	for _, reconciler := range p.reconcilers {
		next, results := reconciler(obj)
		for _, res := range results {
			switch res.State {
			case reconcile.Corrected:
				corrections = append(corrections, Correction{
					Field:   res.Field,
					Stored:  res.Stored,
					Applied: res.Computed,
					Delta:   res.Delta,
				})
			case reconcile.Flagged:
				if p.monitor != nil {
					p.monitor.RecordFlagged(op, key, res.Field+": "+string(ClassDiscrepancy))
				}
			}
		}
		obj = next
	}

	out := Outcome[T]{State: StateAccepted, Object: obj, Corrections: corrections}
	if len(corrections) > 0 {
		out.State = StateCorrected
	}
	if p.provenance {
		out.Provenance = p.captureProvenance(op, batchID, key, rec)
	}

	if p.monitor != nil {
		if out.State == StateCorrected {
			p.monitor.RecordCorrected(op)
		} else {
			p.monitor.RecordAccepted(op)
		}
	}
	return out
}

// runTransform isolates the transformer call so a panicking transform
// becomes a reported failure instead of taking down sibling records.
func (p *Processor[T]) runTransform(v schema.Validated) (obj T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transformer panic: %v", r)
		}
	}()
	return p.transform(v)
}

func (p *Processor[T]) reject(op string, f Failure) Outcome[T] {
	if p.monitor != nil {
		p.monitor.RecordRejected(op, f.Key, f.Fingerprint(), f.Critical)
	}
	return Outcome[T]{State: StateRejected, Failure: &f}
}

// fold assembles the batch result from per-record outcomes, preserving
// input order for accepted objects.
func (p *Processor[T]) fold(outcomes []Outcome[T]) BatchResult[T] {
	res := BatchResult[T]{Outcomes: outcomes}
	for _, out := range outcomes {
		switch out.State {
		case StateRejected:
			res.Failures = append(res.Failures, *out.Failure)
		default:
			res.Accepted = append(res.Accepted, out.Object)
		}
	}
	return res
}

func (p *Processor[T]) recordKey(rec rawrecord.Record) string {
	if p.keyField == "" {
		return ""
	}
	v := rec.Get(p.keyField)
	if s, ok := v.StringVal(); ok {
		return s
	}
	if n, ok := v.NumberVal(); ok {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

func (p *Processor[T]) captureProvenance(op string, batchID uuid.UUID, key string, rec rawrecord.Record) *Provenance {
	fields := make(map[string]any, len(rec))
	for name, v := range rec {
		fields[name] = v.Interface()
	}
	return &Provenance{
		BatchID:    batchID,
		Operation:  op,
		Key:        key,
		ReceivedAt: time.Now(),
		RawFields:  fields,
	}
}

// structuralFailure condenses a record's field errors into one failure.
// The first failing field names the path; the reason keeps the rest.
func structuralFailure(key string, err error) Failure {
	ferrs := schema.AsFieldErrors(err)
	if len(ferrs) == 0 {
		return Failure{Key: key, FieldPath: "(record)", Class: schema.ClassTypeMismatch, Reason: err.Error()}
	}
	first := ferrs.First()
	return Failure{
		Key:       key,
		FieldPath: first.Path,
		Class:     first.Class,
		Reason:    ferrs.Error(),
		Raw:       first.Raw,
	}
}
