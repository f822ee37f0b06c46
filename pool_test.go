package chanpool

import (
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/chanpool/metrics"
)

func TestPool_InvalidSize(t *testing.T) {
	_, err := NewPool(0)
	assert.ErrorIs(t, err, ErrInvalidPoolSize)

	_, err = NewPool(-1)
	assert.ErrorIs(t, err, ErrInvalidPoolSize)
}

func TestPool_SizeAndJoinable(t *testing.T) {
	p, err := NewPool(3)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, 3, p.Size())
	assert.True(t, p.Joinable())
}

func TestPool_Arithmetic(t *testing.T) {
	p, err := NewPool(4)
	require.NoError(t, err)
	defer p.Close()

	futures := make([]*Future[int], 100)
	for i := 0; i < 100; i++ {
		i := i
		fut, err := AddTask[int](p, func(ctx TaskContext) (int, error) { return i * i, nil })
		require.NoError(t, err)
		futures[i] = fut
	}

	got := make([]int, 100)
	for i, fut := range futures {
		v, err := fut.Wait()
		require.NoError(t, err)
		got[i] = v
	}

	sort.Ints(got)
	want := make([]int, 100)
	for i := range want {
		want[i] = i * i
	}
	sort.Ints(want)
	assert.Equal(t, want, got)

	require.NoError(t, p.Join())
}

func TestPool_TaskFailureIsolation(t *testing.T) {
	p, err := NewPool(2)
	require.NoError(t, err)
	defer p.Close()

	boom := errors.New("boom")
	ok := func(ctx TaskContext) (int, error) { return 1, nil }
	fail := func(ctx TaskContext) (int, error) { return 0, boom }

	fns := []func(TaskContext) (int, error){ok, fail, ok, fail, ok}
	futures := make([]*Future[int], len(fns))
	for i, fn := range fns {
		fut, err := AddTask[int](p, fn)
		require.NoError(t, err)
		futures[i] = fut
	}

	var successes, failures int
	for _, fut := range futures {
		_, err := fut.Wait()
		if err != nil {
			failures++
			var tf *TaskFailure
			require.ErrorAs(t, err, &tf)
			assert.ErrorIs(t, tf.Err, boom)
		} else {
			successes++
		}
	}

	assert.Equal(t, 3, successes)
	assert.Equal(t, 2, failures)
	assert.True(t, p.Joinable())

	require.NoError(t, p.Join())
}

func TestPool_JoinImpliesAcceptedTasksRan(t *testing.T) {
	p, err := NewPool(2)
	require.NoError(t, err)

	var ran int32
	var mu sync.Mutex
	const n = 50
	futures := make([]*Future[struct{}], n)
	for i := 0; i < n; i++ {
		fut, err := AddTask[struct{}](p, func(ctx TaskContext) (struct{}, error) {
			mu.Lock()
			ran++
			mu.Unlock()
			return struct{}{}, nil
		})
		require.NoError(t, err)
		futures[i] = fut
	}

	require.NoError(t, p.Join())

	for _, fut := range futures {
		_, err := fut.Wait()
		require.NoError(t, err)
	}
	assert.Equal(t, int32(n), ran)

	_, err = AddTask[struct{}](p, func(ctx TaskContext) (struct{}, error) { return struct{}{}, nil })
	assert.ErrorIs(t, err, ErrPoolNotListening)
}

func TestPool_KillAbandonsUnstartedTasks(t *testing.T) {
	p, err := NewPool(1)
	require.NoError(t, err)

	block := make(chan struct{})
	firstStarted := make(chan struct{})

	firstFut, err := AddTask[int](p, func(ctx TaskContext) (int, error) {
		close(firstStarted)
		<-block
		return 1, nil
	})
	require.NoError(t, err)

	<-firstStarted // the single worker is now occupied

	secondFut, err := AddTask[int](p, func(ctx TaskContext) (int, error) { return 2, nil })
	require.NoError(t, err)

	time.Sleep(time.Millisecond) // give the second task a chance to sit queued

	killDone := make(chan struct{})
	go func() {
		p.Kill()
		close(killDone)
	}()

	// The in-flight task only unblocks once Kill has begun: wait until the
	// channel has left Listening (by then the queued task has been dropped),
	// then release it while Kill is still waiting for the worker to exit.
	for p.Joinable() {
		time.Sleep(time.Millisecond)
	}
	close(block)
	<-killDone

	v, err := firstFut.Wait()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = secondFut.Wait()
	require.Error(t, err)
	var tf *TaskFailure
	require.ErrorAs(t, err, &tf)
	assert.ErrorIs(t, tf.Err, ErrDead)
}

func TestPool_CloseIsNoopWhenAlreadyDead(t *testing.T) {
	p, err := NewPool(1)
	require.NoError(t, err)

	require.NoError(t, p.Join())
	assert.False(t, p.Joinable())

	p.Close() // must not block or panic
}

func TestPool_ContextMonotonicity(t *testing.T) {
	p, err := NewPool(1)
	require.NoError(t, err)
	defer p.Close()

	var seen []uint64
	var mu sync.Mutex
	const n = 10
	futures := make([]*Future[struct{}], n)
	for i := 0; i < n; i++ {
		fut, err := AddTask[struct{}](p, func(ctx TaskContext) (struct{}, error) {
			mu.Lock()
			seen = append(seen, ctx.ProcessedTasks)
			mu.Unlock()
			return struct{}{}, nil
		})
		require.NoError(t, err)
		futures[i] = fut
	}

	for _, fut := range futures {
		_, err := fut.Wait()
		require.NoError(t, err)
	}

	require.Len(t, seen, n)
	for i, v := range seen {
		assert.Equal(t, uint64(i), v)
	}
}

func TestPool_WithMetricsRecordsAgainstBasicProvider(t *testing.T) {
	provider := metrics.NewBasicProvider()
	p, err := NewPool(2, WithMetrics(provider))
	require.NoError(t, err)
	defer p.Close()

	boom := errors.New("boom")
	ok := func(ctx TaskContext) (int, error) { return 1, nil }
	fail := func(ctx TaskContext) (int, error) { return 0, boom }

	futures := make([]*Future[int], 0, 6)
	for i := 0; i < 3; i++ {
		fut, err := AddTask[int](p, ok)
		require.NoError(t, err)
		futures = append(futures, fut)
	}
	for i := 0; i < 2; i++ {
		fut, err := AddTask[int](p, fail)
		require.NoError(t, err)
		futures = append(futures, fut)
	}

	for _, fut := range futures {
		fut.Wait() //nolint:errcheck // outcome already asserted by submission count below
	}
	require.NoError(t, p.Join())

	submitted := provider.Counter("chanpool_tasks_submitted_total").(*metrics.BasicCounter)
	completed := provider.Counter("chanpool_tasks_completed_total").(*metrics.BasicCounter)
	failed := provider.Counter("chanpool_tasks_failed_total").(*metrics.BasicCounter)
	inFlight := provider.UpDownCounter("chanpool_tasks_in_flight").(*metrics.BasicUpDownCounter)
	duration := provider.Histogram("chanpool_task_duration_seconds").(*metrics.BasicHistogram)

	assert.EqualValues(t, 5, submitted.Snapshot())
	assert.EqualValues(t, 3, completed.Snapshot())
	assert.EqualValues(t, 2, failed.Snapshot())
	assert.EqualValues(t, 0, inFlight.Snapshot())
	assert.EqualValues(t, 5, duration.Snapshot().Count)
}

func TestPool_WithMetricsRecordsAgainstPrometheusProvider(t *testing.T) {
	provider := metrics.NewPrometheusProvider()
	p, err := NewPool(2, WithMetrics(provider))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := AddTask[int](p, func(ctx TaskContext) (int, error) { return 1, nil })
		require.NoError(t, err)
	}
	require.NoError(t, p.Join())

	families, err := provider.Gatherer().Gather()
	require.NoError(t, err)

	var sawSubmitted bool
	for _, f := range families {
		if f.GetName() == "chanpool_tasks_submitted_total" {
			sawSubmitted = true
			for _, m := range f.GetMetric() {
				assert.EqualValues(t, 4, m.GetCounter().GetValue())
			}
		}
	}
	assert.True(t, sawSubmitted, "expected chanpool_tasks_submitted_total to be registered")
}
