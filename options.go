package chanpool

import (
	"log/slog"

	"github.com/ygrebnov/chanpool/metrics"
)

// Option configures a Pool at construction time using the functional-options
// pattern: Option func(*poolConfig), paired with With... constructors below.
type Option func(*poolConfig)

type poolConfig struct {
	metrics metrics.Provider
	logger  *slog.Logger
}

func defaultPoolConfig() poolConfig {
	return poolConfig{
		metrics: metrics.NewNoopProvider(),
	}
}

// WithMetrics records Pool instrumentation (tasks submitted/completed/failed,
// in-flight count, task duration) against the given Provider. The default is
// metrics.NewNoopProvider, so instrumentation costs nothing unless a caller
// opts in, e.g. with metrics.NewPrometheusProvider() or
// metrics.NewBasicProvider().
func WithMetrics(p metrics.Provider) Option {
	return func(c *poolConfig) {
		if p != nil {
			c.metrics = p
		}
	}
}

// WithLogger sets the *slog.Logger a Pool logs worker lifecycle events to.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *poolConfig) { c.logger = l }
}
