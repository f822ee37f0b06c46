// Package chanpool provides two small, from-scratch concurrency primitives:
//
// Channel[T] is a multi-producer, multi-consumer, in-memory FIFO with an
// explicit four-state lifecycle (Listening, Joining, Killing, Dead): Join
// drains the queue gracefully, Kill aborts immediately and discards whatever
// is still queued. SignalChannel is the same lifecycle over a bare counting
// semaphore, for pure N-way wakeups with no message payload.
//
// Pool is a fixed-size worker pool built on a Channel of type-erased,
// one-shot tasks. AddTask submits a callable of one of several recognised
// signatures and returns a typed Future the caller waits on independently of
// every other submission, so a single Pool can run tasks with heterogeneous
// result types concurrently.
package chanpool
