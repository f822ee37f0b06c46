package chanpool

import (
	"reflect"
	"sync"

	"github.com/ygrebnov/chanpool/internal/recycler"
)

// futureBuffers caches one internal/recycler.BufferPool per distinct result
// type R, keyed by reflect.Type. A single Pool runs tasks of heterogeneous
// result types, so there is no one concrete R to build a plain BufferPool
// around; this cache partitions by R so the scratch slice RunAll recycles
// across repeated calls is still reused per result type, not reallocated
// every call.
var futureBuffers sync.Map // reflect.Type -> *recycler.BufferPool[*Future[R]], boxed as any

func futureBuffer[R any]() *recycler.BufferPool[*Future[R]] {
	key := reflect.TypeOf((*R)(nil))

	if v, ok := futureBuffers.Load(key); ok {
		return v.(*recycler.BufferPool[*Future[R]])
	}

	pool := recycler.NewBufferPool[*Future[R]]()
	actual, _ := futureBuffers.LoadOrStore(key, pool)
	return actual.(*recycler.BufferPool[*Future[R]])
}
