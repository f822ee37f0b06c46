package chanpool

// AddTask submits fn to p and returns a Future that resolves with its
// result. Go has no generic methods, so this is a free function rather than
// a (*Pool).AddTask[R] method. fn is an interface{}, so R cannot be inferred
// from it and is always given as an explicit type argument (AddTask[int]).
//
// fn must be one of:
//
//	func(TaskContext) (R, error)
//	func(TaskContext) R
//	func(TaskContext) error
//	func() (R, error)
//	func() R
//	func() error
//
// Any other shape returns ErrInvalidTaskSignature and a nil Future.
//
// AddTask returns ErrPoolNotListening once the pool has left StateListening,
// i.e. once Join or Kill has been called (including when a concurrent Send
// loses the race against one of those calls). The Future returned alongside
// that error is non-nil and already resolved with an ErrPoolNotListening
// TaskFailure, so callers can always Wait on it without risking a goroutine
// leak.
func AddTask[R any](p *Pool, fn interface{}) (*Future[R], error) {
	normalized, err := normalizeTaskFunc[R](fn)
	if err != nil {
		return nil, err
	}

	future := newFuture[R]()
	task := &boundTask[R]{fn: normalized, future: future}

	p.metrics.TasksSubmitted.Add(1)

	if err := p.tasks.Send(task); err != nil {
		var zero R
		future.resolve(zero, newTaskFailure(ErrPoolNotListening, -1))
		return future, ErrPoolNotListening
	}

	return future, nil
}
