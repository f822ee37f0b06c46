package metrics

// Provider constructs the instruments PoolMetrics records Pool activity
// against: tasks submitted/completed/failed, tasks in flight, and time spent
// inside a task's callable. A Pool only ever calls Counter/UpDownCounter/
// Histogram once per instrument name, at construction, and holds onto the
// result for the rest of its life, so implementations need not optimize for
// repeated lookups by the same caller.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records a monotonic count, such as chanpool_tasks_completed_total.
// Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records a value that moves up or down, such as the current
// count of in-flight tasks. Methods must be safe for concurrent use.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, such as task
// duration in seconds. Methods must be safe for concurrent use.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries optional, advisory instrument metadata. A
// Provider may use it to set help text or a unit label; none of it changes
// an instrument's recording behavior.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g., "1", "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

// applyOptions builds an InstrumentConfig from a set of options. Shared by
// Provider implementations that care about description/unit (currently only
// PrometheusProvider, which surfaces them as Prometheus HELP text).
func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
