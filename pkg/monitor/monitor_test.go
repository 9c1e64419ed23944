package monitor_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmstand/recordkit/pkg/monitor"
)

func TestMonitor_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("success rate is exact", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		const op = "cart.addItem.stockCheck"

		for range 3 {
			m.RecordAccepted(op)
		}
		m.RecordRejected(op, "prod-7", "price: type_mismatch", false)

		snap := m.Snapshot(op)
		assert.Equal(t, uint64(4), snap.Attempts)
		assert.Equal(t, uint64(3), snap.Accepted)
		assert.Equal(t, uint64(1), snap.Rejected)
		assert.Equal(t, 3.0/4.0, snap.SuccessRate)
	})

	t.Run("corrected records count toward success", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		m.RecordAccepted("orders.load")
		m.RecordCorrected("orders.load")

		snap := m.Snapshot("orders.load")
		assert.Equal(t, uint64(2), snap.Attempts)
		assert.Equal(t, 1.0, snap.SuccessRate)
		assert.Equal(t, monitor.StatusHealthy, snap.Status)
	})

	t.Run("unknown operation is healthy", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		snap := m.Snapshot("never.seen")
		assert.Equal(t, 1.0, snap.SuccessRate)
		assert.Equal(t, monitor.StatusHealthy, snap.Status)
		assert.Zero(t, snap.Attempts)
	})

	t.Run("flagged is a side counter, not an attempt", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		m.RecordAccepted("orders.load")
		m.RecordFlagged("orders.load", "ord-1", "subtotal: calculation_discrepancy")

		snap := m.Snapshot("orders.load")
		assert.Equal(t, uint64(1), snap.Attempts)
		assert.Equal(t, uint64(1), snap.Flagged)
		assert.Equal(t, 1.0, snap.SuccessRate)
	})
}

func TestMonitor_HealthClassification(t *testing.T) {
	t.Parallel()

	t.Run("default thresholds", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		const op = "products.load"

		// 19/20 = 95%: still healthy
		for range 19 {
			m.RecordAccepted(op)
		}
		m.RecordRejected(op, "prod-20", "name: missing_required", false)
		assert.Equal(t, monitor.StatusHealthy, m.Snapshot(op).Status)

		// push under 95%
		m.RecordRejected(op, "prod-21", "name: missing_required", false)
		assert.Equal(t, monitor.StatusDegraded, m.Snapshot(op).Status)
	})

	t.Run("critical below 80 percent", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		const op = "products.load"
		m.RecordAccepted(op)
		for range 3 {
			m.RecordRejected(op, "", "price: type_mismatch", false)
		}
		assert.Equal(t, monitor.StatusCritical, m.Snapshot(op).Status)
	})

	t.Run("per-operation override", func(t *testing.T) {
		t.Parallel()
		m := monitor.New(
			monitor.WithOperationThresholds("lenient.op", monitor.Thresholds{Degraded: 0.50, Critical: 0.10}),
		)
		m.RecordAccepted("lenient.op")
		m.RecordRejected("lenient.op", "", "x: type_mismatch", false)
		assert.Equal(t, monitor.StatusHealthy, m.Snapshot("lenient.op").Status)
	})
}

func TestMonitor_Fingerprints(t *testing.T) {
	t.Parallel()

	t.Run("top fingerprints ordered by frequency", func(t *testing.T) {
		t.Parallel()
		m := monitor.New(monitor.WithTopN(2))
		const op = "products.load"

		for i := range 5 {
			m.RecordRejected(op, fmt.Sprintf("prod-%d", i), "min_pre_order_quantity: type_mismatch", false)
		}
		for range 3 {
			m.RecordRejected(op, "", "image_url: malformed_format", false)
		}
		m.RecordRejected(op, "", "name: missing_required", false)

		top := m.Snapshot(op).TopRejections
		require.Len(t, top, 2)
		assert.Equal(t, "min_pre_order_quantity: type_mismatch", top[0].Fingerprint)
		assert.Equal(t, uint64(5), top[0].Count)
		assert.Equal(t, "image_url: malformed_format", top[1].Fingerprint)
	})

	t.Run("fingerprint keeps the last seen record key", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		const op = "products.load"

		m.RecordRejected(op, "prod-1", "price: type_mismatch", false)
		m.RecordRejected(op, "prod-9", "price: type_mismatch", false)
		m.RecordRejected(op, "", "price: type_mismatch", false) // keyless record keeps the prior key

		top := m.Snapshot(op).TopRejections
		require.Len(t, top, 1)
		assert.Equal(t, uint64(3), top[0].Count)
		assert.Equal(t, "prod-9", top[0].LastKey)
	})

	t.Run("flagged discrepancies stay out of rejections", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		const op = "orders.load"

		m.RecordFlagged(op, "ord-1", "subtotal: calculation_discrepancy")
		m.RecordRejected(op, "ord-2", "status: business_rule_violation", true)

		snap := m.Snapshot(op)
		require.Len(t, snap.TopRejections, 1)
		assert.Equal(t, "status: business_rule_violation", snap.TopRejections[0].Fingerprint)
		require.Len(t, snap.TopDiscrepancies, 1)
		assert.Equal(t, "subtotal: calculation_discrepancy", snap.TopDiscrepancies[0].Fingerprint)
		assert.Equal(t, "ord-1", snap.TopDiscrepancies[0].LastKey)
	})

	t.Run("critical rejections tracked separately", func(t *testing.T) {
		t.Parallel()
		m := monitor.New()
		m.RecordRejected("orders.load", "ord-1", "status: illegal_transition", true)
		m.RecordRejected("orders.load", "ord-2", "name: missing_required", false)

		snap := m.Snapshot("orders.load")
		assert.Equal(t, uint64(2), snap.Rejected)
		assert.Equal(t, uint64(1), snap.CriticalRejections)
	})
}

func TestMonitor_Concurrency(t *testing.T) {
	t.Parallel()

	m := monitor.New()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 250 {
				m.RecordAccepted("concurrent.op")
				m.RecordRejected("concurrent.op", "", "f: type_mismatch", false)
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot("concurrent.op")
	assert.Equal(t, uint64(4000), snap.Attempts)
	assert.Equal(t, uint64(2000), snap.Accepted)
	assert.Equal(t, uint64(2000), snap.Rejected)
	assert.Equal(t, 0.5, snap.SuccessRate)
}

func TestCollector(t *testing.T) {
	t.Parallel()

	m := monitor.New()
	m.RecordAccepted("products.load")
	m.RecordAccepted("products.load")
	m.RecordRejected("products.load", "prod-1", "price: type_mismatch", false)

	c := monitor.NewCollector(m)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	expected := `
# HELP recordkit_validation_accepted_total Total accepted records per operation
# TYPE recordkit_validation_accepted_total counter
recordkit_validation_accepted_total{operation="products.load"} 2
# HELP recordkit_validation_rejected_total Total rejected records per operation
# TYPE recordkit_validation_rejected_total counter
recordkit_validation_rejected_total{operation="products.load"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"recordkit_validation_accepted_total",
		"recordkit_validation_rejected_total",
	)
	require.NoError(t, err)
}
