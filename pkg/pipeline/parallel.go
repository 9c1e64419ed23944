package pipeline

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/farmstand/recordkit/pkg/rawrecord"
)

// ProcessParallel runs the same fold as Process across a bounded worker
// pool. Records are independent by contract, so the accepted/rejected set
// is identical to sequential processing; outcomes are written by input
// index and folded in order afterwards, preserving the ordering guarantee
// for accepted objects.
//
// workers caps concurrency; values below 2 fall back to Process. Strict
// invariant checking happens after the pool drains, since a mid-batch
// abort would make the outcome set depend on scheduling.
func (p *Processor[T]) ProcessParallel(ctx context.Context, op string, recs []rawrecord.Record, workers int) (BatchResult[T], error) {
	if workers < 2 || len(recs) < 2 {
		return p.Process(ctx, op, recs)
	}

	batchID := uuid.New()
	outcomes := make([]Outcome[T], len(recs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, rec := range recs {
		g.Go(func() error {
			outcomes[i] = p.processOne(op, batchID, rec)
			return nil
		})
	}
	// Workers never return errors; Wait only joins the pool.
	_ = g.Wait()

	if p.strict {
		for _, out := range outcomes {
			if out.State == StateRejected && out.Failure.Class == ClassTransformation {
				return p.fold(outcomes), ErrInvariantViolation
			}
		}
	}
	return p.fold(outcomes), nil
}
