// Package monitor aggregates validation outcomes per operation name so that
// latent schema drift shows up as a degrading success rate and a recurring
// rejection fingerprint, not as a production incident.
//
// A Monitor is an injectable, mutex-guarded in-memory aggregator - never a
// hidden singleton - so batch operations receive the instance explicitly
// and tests can use an isolated one. Recording is pure bookkeeping: no
// I/O happens on the validation hot path. Export is pull-based; Collector
// adapts a Monitor to prometheus.Collector for processes that scrape.
//
// # Usage
//
//	m := monitor.New()
//	m.RecordAccepted("cart.addItem.stockCheck")
//	m.RecordRejected("cart.addItem.stockCheck", "prod-1", "min_pre_order_quantity: type_mismatch", false)
//
//	snap := m.Snapshot("cart.addItem.stockCheck")
//	if snap.Status == monitor.StatusCritical {
//	    // success rate fell below the critical threshold
//	}
//
// Health classification is threshold-based: below the degraded threshold
// (default 0.95) an operation is degraded, below the critical threshold
// (default 0.80) it is critical. Thresholds can be overridden globally or
// per operation. Counters live for the life of the process; there is no
// persistence across restarts.
package monitor
