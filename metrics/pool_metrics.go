package metrics

// PoolMetrics names and holds the concrete instruments a chanpool.Pool
// records against, built once from whatever Provider the caller configured
// via chanpool.WithMetrics. It exists so the Pool itself never constructs
// instruments by hand or repeats instrument names.
type PoolMetrics struct {
	TasksSubmitted Counter
	TasksCompleted Counter
	TasksFailed    Counter
	InFlight       UpDownCounter
	TaskDuration   Histogram
}

// NewPoolMetrics builds the standard instrument set for a worker pool on top
// of the given Provider.
func NewPoolMetrics(p Provider) *PoolMetrics {
	return &PoolMetrics{
		TasksSubmitted: p.Counter(
			"chanpool_tasks_submitted_total",
			WithDescription("Tasks submitted via AddTask, including any rejected because the pool was not listening"),
			WithUnit("1"),
		),
		TasksCompleted: p.Counter(
			"chanpool_tasks_completed_total",
			WithDescription("Tasks whose callable returned without error"),
			WithUnit("1"),
		),
		TasksFailed: p.Counter(
			"chanpool_tasks_failed_total",
			WithDescription("Tasks that returned an error or panicked"),
			WithUnit("1"),
		),
		InFlight: p.UpDownCounter(
			"chanpool_tasks_in_flight",
			WithDescription("Tasks currently being executed by a worker"),
			WithUnit("1"),
		),
		TaskDuration: p.Histogram(
			"chanpool_task_duration_seconds",
			WithDescription("Wall-clock time spent inside a task's callable"),
			WithUnit("seconds"),
		),
	}
}
