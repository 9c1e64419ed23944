// Package config loads the pipeline's static configuration from the
// environment once at process start. There is no hot reload by design:
// tolerances, correction ceilings, and health thresholds are business
// policy, and policy changes go through a restart.
//
// Load parses env-tagged structs with caarlos0/env after a one-time
// best-effort .env bootstrap via godotenv, and caches each config type so
// repeated loads across packages see the same values.
//
// # Usage
//
//	var cfg config.ReconcilerConfig
//	if err := config.Load(&cfg); err != nil {
//	    // missing or malformed environment
//	}
//	r := reconcile.New(cfg.Options()...)
//
// The concrete config types mirror the pipeline's three configuration
// surfaces: ReconcilerConfig (tolerance and ceiling), MonitorConfig
// (health thresholds and fingerprint depth), and PipelineConfig
// (parallelism and strict-invariant mode).
package config
