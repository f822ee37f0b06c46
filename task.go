package chanpool

import (
	"fmt"
	"time"
)

// TaskContext is a read-only record handed to a task's callable when it
// opts in to receiving one (see the signatures recognised by AddTask). It is
// built once per task execution and never shared between workers.
type TaskContext struct {
	// WorkerIndex identifies the worker executing this task, in [0, pool size).
	WorkerIndex int

	// OSThreadID is the executing worker's best-effort OS thread identity.
	// On platforms where chanpool can observe a real kernel thread id
	// (currently Linux, via golang.org/x/sys/unix.Gettid), this is that id.
	// Elsewhere it falls back to WorkerIndex, since Go goroutines are not
	// otherwise pinned to a single OS thread.
	OSThreadID int

	// ProcessedTasks is the count of tasks this worker had already completed
	// before this one started.
	ProcessedTasks uint64

	// WorkerStartedAt is the wall-clock time the worker goroutine was spawned.
	WorkerStartedAt time.Time
}

// erasedTask is the type-erased, one-shot runnable a Pool's channel carries.
// It is callable exactly once, always delivers a result (value or failure)
// to its bound Future, and never lets a panic escape to the worker. run
// returns the same failure (if any) it delivered to the future, purely so
// the worker loop can drive metrics/logging without knowing R.
type erasedTask interface {
	run(ctx TaskContext) error

	// abandon resolves the task's future in the cancelled state without
	// ever invoking the callable. It is used only for tasks still sitting
	// in the channel's queue at the moment a Pool is killed.
	abandon()
}

// boundTask pairs a normalized callable with the Future its result will be
// published to. R is erased from the Pool's point of view: the Pool's
// channel only ever sees the erasedTask interface, which is how a single
// fixed-size Pool can run tasks of heterogeneous result types.
type boundTask[R any] struct {
	fn     func(TaskContext) (R, error)
	future *Future[R]
}

func (t *boundTask[R]) run(ctx TaskContext) (failure error) {
	defer func() {
		if p := recover(); p != nil {
			var zero R
			failure = newTaskFailure(fmt.Errorf("task execution panicked: %v", p), ctx.WorkerIndex)
			t.future.resolve(zero, failure)
		}
	}()

	val, err := t.fn(ctx)
	if err != nil {
		var zero R
		failure = newTaskFailure(err, ctx.WorkerIndex)
		t.future.resolve(zero, failure)
		return failure
	}

	t.future.resolve(val, nil)
	return nil
}

// abandon settles the task as cancelled: it never ran because the pool was
// killed while the task was still queued.
func (t *boundTask[R]) abandon() {
	var zero R
	t.future.resolve(zero, newTaskFailure(ErrDead, -1))
}

// normalizeTaskFunc recognises the task signatures AddTask accepts and
// erases them into a single func(TaskContext) (R, error) shape. The six
// shapes form two submission overloads, distinguished by whether fn accepts
// a TaskContext as its only argument or takes no argument at all (covering
// callables that already closed over everything they need); each overload
// comes in value+error, value-only and error-only form.
func normalizeTaskFunc[R any](fn interface{}) (func(TaskContext) (R, error), error) {
	switch f := fn.(type) {
	case func(TaskContext) (R, error):
		return f, nil

	case func(TaskContext) R:
		return func(ctx TaskContext) (R, error) { return f(ctx), nil }, nil

	case func(TaskContext) error:
		return func(ctx TaskContext) (R, error) {
			var zero R
			return zero, f(ctx)
		}, nil

	case func() (R, error):
		return func(TaskContext) (R, error) { return f() }, nil

	case func() R:
		return func(TaskContext) (R, error) { return f(), nil }, nil

	case func() error:
		return func(TaskContext) (R, error) {
			var zero R
			return zero, f()
		}, nil

	default:
		return nil, ErrInvalidTaskSignature
	}
}
