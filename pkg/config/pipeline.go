package config

import (
	"github.com/farmstand/recordkit/pkg/monitor"
	"github.com/farmstand/recordkit/pkg/reconcile"
)

// ReconcilerConfig is the env surface for calculation reconciliation
// policy. A zero ceiling means corrections are unbounded, matching the
// reconcile package's default.
type ReconcilerConfig struct {
	Tolerance     float64 `env:"RECONCILE_TOLERANCE" envDefault:"0.01"`
	Ceiling       float64 `env:"RECONCILE_CORRECTION_CEILING" envDefault:"0"`
	NoCorrections bool    `env:"RECONCILE_DISABLE_CORRECTIONS" envDefault:"false"`
}

// Options converts the config into reconcile constructor options.
func (c ReconcilerConfig) Options() []reconcile.Option {
	opts := []reconcile.Option{reconcile.WithTolerance(c.Tolerance)}
	if c.Ceiling > 0 {
		opts = append(opts, reconcile.WithCeiling(c.Ceiling))
	}
	if c.NoCorrections {
		opts = append(opts, reconcile.WithoutCorrection())
	}
	return opts
}

// MonitorConfig is the env surface for validation health classification.
type MonitorConfig struct {
	DegradedBelow float64 `env:"MONITOR_DEGRADED_BELOW" envDefault:"0.95"`
	CriticalBelow float64 `env:"MONITOR_CRITICAL_BELOW" envDefault:"0.80"`
	TopRejections int     `env:"MONITOR_TOP_REJECTIONS" envDefault:"5"`
}

// Options converts the config into monitor constructor options.
func (c MonitorConfig) Options() []monitor.Option {
	return []monitor.Option{
		monitor.WithThresholds(monitor.Thresholds{
			Degraded: c.DegradedBelow,
			Critical: c.CriticalBelow,
		}),
		monitor.WithTopN(c.TopRejections),
	}
}

// PipelineConfig is the env surface for batch processing behavior.
// Workers below 2 keep processing sequential; StrictInvariants makes
// transformation failures abort batches and belongs in development
// environments only.
type PipelineConfig struct {
	Workers          int  `env:"PIPELINE_WORKERS" envDefault:"1"`
	StrictInvariants bool `env:"PIPELINE_STRICT_INVARIANTS" envDefault:"false"`
}
