package chanpool

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ygrebnov/chanpool/internal/telemetry"
	"github.com/ygrebnov/chanpool/metrics"
)

// Pool owns a fixed vector of worker goroutines and a single Channel[Task]:
// Submission constructs a Task wrapping the caller's callable, enqueues it,
// and returns a Future the caller can wait on. Workers dequeue and run tasks
// until the channel reports end-of-stream.
//
// The Pool's size never changes after construction; dynamic resizing is not
// supported.
type Pool struct {
	tasks *Channel[erasedTask]
	size  int

	wg sync.WaitGroup

	metrics *metrics.PoolMetrics
	logger  *slog.Logger
}

// NewPool constructs a Pool with size workers, eagerly spawned. size must be
// greater than zero.
func NewPool(size int, opts ...Option) (*Pool, error) {
	if size <= 0 {
		return nil, ErrInvalidPoolSize
	}

	cfg := defaultPoolConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &Pool{
		tasks:   NewChannel[erasedTask](),
		size:    size,
		metrics: metrics.NewPoolMetrics(cfg.metrics),
		logger:  telemetry.Pool(cfg.logger),
	}

	for i := 0; i < size; i++ {
		p.spawnWorker(i)
	}

	return p, nil
}

// Size reports the pool's fixed worker count.
func (p *Pool) Size() int { return p.size }

// Joinable reports whether the pool's channel is currently in StateListening.
func (p *Pool) Joinable() bool { return p.tasks.Joinable() }

// Join drains and stops the pool: every task already accepted runs to
// completion, AddTask fails on and after this call, and Join blocks until
// every worker has exited. It returns ErrAlreadyJoiningOrDead if the pool
// was not listening when Join was called.
func (p *Pool) Join() error {
	err := p.tasks.Join(nil)
	p.wg.Wait()
	return err
}

// Kill stops the pool abruptly: tasks that have not yet started are
// discarded without running, their futures resolving with an ErrDead-backed
// TaskFailure; in-flight tasks are allowed to complete. Kill blocks until
// every worker has exited. It is infallible.
func (p *Pool) Kill() {
	p.tasks.KillDraining(func(task erasedTask) {
		task.abandon()
	})
	p.wg.Wait()
}

// Close behaves as Kill if the pool is still live (in StateListening), and
// is otherwise a no-op. It is meant for `defer pool.Close()`, so tearing down
// a pool that was already joined or killed never blocks or panics.
func (p *Pool) Close() {
	if p.Joinable() {
		p.Kill()
	}
}

func (p *Pool) spawnWorker(index int) {
	p.wg.Add(1)
	startedAt := time.Now()
	logger := p.logger.With("worker", index)

	go func() {
		defer p.wg.Done()

		logger.Debug("worker started")
		var processed uint64

		for {
			task, err := p.tasks.Recv()
			if err != nil {
				logger.Debug("worker stopping", "processed", processed)
				return
			}

			osThreadID := currentOSThreadID()
			if osThreadID < 0 {
				osThreadID = index
			}

			ctx := TaskContext{
				WorkerIndex:     index,
				OSThreadID:      osThreadID,
				ProcessedTasks:  processed,
				WorkerStartedAt: startedAt,
			}

			p.runTask(task, ctx, logger)
			processed++
		}
	}()
}

func (p *Pool) runTask(task erasedTask, ctx TaskContext, logger *slog.Logger) {
	p.metrics.InFlight.Add(1)
	start := time.Now()

	// Defensive recover: boundTask.run already guarantees it never panics,
	// but the worker loop stays conservative about running arbitrary
	// erasedTask implementations, so a second recover guards the call site
	// itself rather than trusting every implementation to behave.
	var failure error
	func() {
		defer func() {
			if r := recover(); r != nil {
				failure = newTaskFailure(fmt.Errorf("task execution panicked: %v", r), ctx.WorkerIndex)
			}
		}()
		failure = task.run(ctx)
	}()

	p.metrics.InFlight.Add(-1)
	p.metrics.TaskDuration.Record(time.Since(start).Seconds())

	if failure != nil {
		p.metrics.TasksFailed.Add(1)
		logger.Warn("task failed", "error", failure)
		return
	}
	p.metrics.TasksCompleted.Add(1)
}
