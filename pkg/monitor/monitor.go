package monitor

import (
	"sort"
	"sync"
	"time"
)

// Status is the ternary health classification of one operation.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusDegraded Status = "degraded"
	StatusCritical Status = "critical"
)

// Thresholds are the success-rate floors for health classification.
type Thresholds struct {
	Degraded float64 // below this the operation is degraded
	Critical float64 // below this the operation is critical
}

// DefaultThresholds matches the documented policy: below 95% degraded,
// below 80% critical.
var DefaultThresholds = Thresholds{Degraded: 0.95, Critical: 0.80}

// FingerprintCount is one recurring failure signature and how often it was
// seen. LastKey is the identifying key of the most recent matching record,
// empty when the schema exposes none.
type FingerprintCount struct {
	Fingerprint string
	Count       uint64
	LastKey     string
}

// HealthSnapshot is the point-in-time summary for one operation.
// TopRejections carries only rejection fingerprints; flagged
// reconciliation discrepancies belong to accepted records and are listed
// apart in TopDiscrepancies.
type HealthSnapshot struct {
	Operation          string
	Since              time.Time
	Attempts           uint64
	Accepted           uint64
	Rejected           uint64
	CriticalRejections uint64
	Corrected          uint64
	Flagged            uint64
	SuccessRate        float64
	Status             Status
	TopRejections      []FingerprintCount
	TopDiscrepancies   []FingerprintCount
}

// fpTally tracks one fingerprint's count and the last record key seen
// carrying it.
type fpTally struct {
	count   uint64
	lastKey string
}

// opStats is the mutable per-operation tally.
type opStats struct {
	since         time.Time
	accepted      uint64
	rejected      uint64
	critical      uint64
	corrected     uint64
	flagged       uint64
	rejections    map[string]*fpTally
	discrepancies map[string]*fpTally
}

func (st *opStats) tally(table map[string]*fpTally, key, fingerprint string) {
	t, ok := table[fingerprint]
	if !ok {
		t = &fpTally{}
		table[fingerprint] = t
	}
	t.count++
	if key != "" {
		t.lastKey = key
	}
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithThresholds overrides the default health thresholds.
func WithThresholds(t Thresholds) Option {
	return func(m *Monitor) {
		if t.Degraded > 0 && t.Critical > 0 {
			m.defaults = t
		}
	}
}

// WithOperationThresholds overrides thresholds for a single operation.
func WithOperationThresholds(op string, t Thresholds) Option {
	return func(m *Monitor) {
		m.overrides[op] = t
	}
}

// WithTopN sets how many rejection fingerprints a snapshot carries.
func WithTopN(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.topN = n
		}
	}
}

// Monitor is a process-wide, goroutine-safe aggregator of validation
// outcomes keyed by operation name.
type Monitor struct {
	mu        sync.RWMutex
	ops       map[string]*opStats
	defaults  Thresholds
	overrides map[string]Thresholds
	topN      int
	now       func() time.Time
}

// New builds an empty monitor.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		ops:       make(map[string]*opStats),
		defaults:  DefaultThresholds,
		overrides: make(map[string]Thresholds),
		topN:      5,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RecordAccepted tallies one accepted record for the operation.
func (m *Monitor) RecordAccepted(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(op).accepted++
}

// RecordRejected tallies one rejected record: its identifying key, its
// fingerprint ("field_path: error_class"), and whether the rejection was a
// critical business-rule violation rather than an ordinary structural one.
// key may be empty when the schema exposes no identifying field.
func (m *Monitor) RecordRejected(op, key, fingerprint string, critical bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stats(op)
	st.rejected++
	if critical {
		st.critical++
	}
	if fingerprint != "" {
		st.tally(st.rejections, key, fingerprint)
	}
}

// RecordCorrected tallies one record whose aggregate was self-healed.
// Corrected records were returned to the caller, so they count toward the
// success rate.
func (m *Monitor) RecordCorrected(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(op).corrected++
}

// RecordFlagged tallies one reconciliation discrepancy too large to
// correct. The record itself still passed; flagged is a high-severity
// side counter for operator follow-up, not part of the attempt tally, and
// its fingerprints never mix into the rejection table.
func (m *Monitor) RecordFlagged(op, key, fingerprint string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.stats(op)
	st.flagged++
	if fingerprint != "" {
		st.tally(st.discrepancies, key, fingerprint)
	}
}

// Snapshot returns the current health summary for one operation. An
// operation with no recorded outcomes reports healthy with a success rate
// of 1.
func (m *Monitor) Snapshot(op string) HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.ops[op]
	if !ok {
		return HealthSnapshot{Operation: op, SuccessRate: 1, Status: StatusHealthy}
	}
	return m.snapshotLocked(op, st)
}

// SnapshotAll returns summaries for every operation seen so far.
func (m *Monitor) SnapshotAll() map[string]HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]HealthSnapshot, len(m.ops))
	for op, st := range m.ops {
		out[op] = m.snapshotLocked(op, st)
	}
	return out
}

// Operations returns the operation names seen so far, sorted.
func (m *Monitor) Operations() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.ops))
	for op := range m.ops {
		names = append(names, op)
	}
	sort.Strings(names)
	return names
}

func (m *Monitor) stats(op string) *opStats {
	st, ok := m.ops[op]
	if !ok {
		st = &opStats{
			since:         m.now(),
			rejections:    make(map[string]*fpTally),
			discrepancies: make(map[string]*fpTally),
		}
		m.ops[op] = st
	}
	return st
}

func (m *Monitor) snapshotLocked(op string, st *opStats) HealthSnapshot {
	attempts := st.accepted + st.rejected + st.corrected
	rate := 1.0
	if attempts > 0 {
		rate = float64(st.accepted+st.corrected) / float64(attempts)
	}

	th, ok := m.overrides[op]
	if !ok {
		th = m.defaults
	}
	status := StatusHealthy
	switch {
	case rate < th.Critical:
		status = StatusCritical
	case rate < th.Degraded:
		status = StatusDegraded
	}

	return HealthSnapshot{
		Operation:          op,
		Since:              st.since,
		Attempts:           attempts,
		Accepted:           st.accepted,
		Rejected:           st.rejected,
		CriticalRejections: st.critical,
		Corrected:          st.corrected,
		Flagged:            st.flagged,
		SuccessRate:        rate,
		Status:             status,
		TopRejections:      topFingerprints(st.rejections, m.topN),
		TopDiscrepancies:   topFingerprints(st.discrepancies, m.topN),
	}
}

// topFingerprints returns the n most frequent signatures, ties broken
// alphabetically so snapshots are stable.
func topFingerprints(counts map[string]*fpTally, n int) []FingerprintCount {
	if len(counts) == 0 {
		return nil
	}
	all := make([]FingerprintCount, 0, len(counts))
	for fp, t := range counts {
		all = append(all, FingerprintCount{Fingerprint: fp, Count: t.count, LastKey: t.lastKey})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Fingerprint < all[j].Fingerprint
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
