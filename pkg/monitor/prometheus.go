package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector adapts a Monitor to prometheus.Collector. Scrapes read the
// monitor's snapshot on demand, keeping the validation hot path free of
// exporter work.
type Collector struct {
	monitor *Monitor

	attempts    *prometheus.Desc
	accepted    *prometheus.Desc
	rejected    *prometheus.Desc
	corrected   *prometheus.Desc
	flagged     *prometheus.Desc
	successRate *prometheus.Desc
	health      *prometheus.Desc
}

// NewCollector wraps a monitor for registration with a prometheus
// registry:
//
//	prometheus.MustRegister(monitor.NewCollector(m))
func NewCollector(m *Monitor) *Collector {
	labels := []string{"operation"}
	return &Collector{
		monitor:     m,
		attempts:    prometheus.NewDesc("recordkit_validation_attempts_total", "Total validation attempts per operation", labels, nil),
		accepted:    prometheus.NewDesc("recordkit_validation_accepted_total", "Total accepted records per operation", labels, nil),
		rejected:    prometheus.NewDesc("recordkit_validation_rejected_total", "Total rejected records per operation", labels, nil),
		corrected:   prometheus.NewDesc("recordkit_validation_corrected_total", "Total self-corrected records per operation", labels, nil),
		flagged:     prometheus.NewDesc("recordkit_reconciliation_flagged_total", "Total flagged reconciliation discrepancies per operation", labels, nil),
		successRate: prometheus.NewDesc("recordkit_validation_success_rate", "Current validation success rate per operation", labels, nil),
		health:      prometheus.NewDesc("recordkit_validation_health", "Health classification per operation (0 healthy, 1 degraded, 2 critical)", labels, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.attempts
	ch <- c.accepted
	ch <- c.rejected
	ch <- c.corrected
	ch <- c.flagged
	ch <- c.successRate
	ch <- c.health
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for op, snap := range c.monitor.SnapshotAll() {
		ch <- prometheus.MustNewConstMetric(c.attempts, prometheus.CounterValue, float64(snap.Attempts), op)
		ch <- prometheus.MustNewConstMetric(c.accepted, prometheus.CounterValue, float64(snap.Accepted), op)
		ch <- prometheus.MustNewConstMetric(c.rejected, prometheus.CounterValue, float64(snap.Rejected), op)
		ch <- prometheus.MustNewConstMetric(c.corrected, prometheus.CounterValue, float64(snap.Corrected), op)
		ch <- prometheus.MustNewConstMetric(c.flagged, prometheus.CounterValue, float64(snap.Flagged), op)
		ch <- prometheus.MustNewConstMetric(c.successRate, prometheus.GaugeValue, snap.SuccessRate, op)
		ch <- prometheus.MustNewConstMetric(c.health, prometheus.GaugeValue, healthValue(snap.Status), op)
	}
}

func healthValue(s Status) float64 {
	switch s {
	case StatusDegraded:
		return 1
	case StatusCritical:
		return 2
	default:
		return 0
	}
}
