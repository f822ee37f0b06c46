package chanpool

import "sync"

// SignalChannel is the degenerate Channel<unit> variant: its payload is "a
// signal" rather than an owned value, so the queue is replaced by a
// non-negative counter of pending signals. It shares Channel's lifecycle
// states, but only Listening and Dead are used: Kill moves straight to Dead,
// and there is no graceful Join, since there is no message inventory to
// drain, only a counter to zero out.
type SignalChannel struct {
	mu   sync.Mutex
	cond *sync.Cond

	count int64
	state lifecycle
}

// NewSignalChannel constructs a SignalChannel in StateListening.
func NewSignalChannel() *SignalChannel {
	c := &SignalChannel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Send increments the pending-signal counter by n (n<=0 is treated as 1) and
// wakes one waiter, or every waiter when n>1. It fails with ErrNotListening
// if the channel is not in StateListening.
func (c *SignalChannel) Send(n int64) error {
	if n <= 0 {
		n = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.load() != StateListening {
		return ErrNotListening
	}

	c.count += n
	if n == 1 {
		c.cond.Signal()
	} else {
		c.cond.Broadcast()
	}
	return nil
}

// Recv blocks until the counter is positive or the channel is no longer
// receivable, in which case it returns ErrDead. On success it decrements the
// counter and wakes a further receiver if more signals remain.
func (c *SignalChannel) Recv() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.count == 0 {
		if !c.state.load().receivable() {
			return ErrDead
		}
		c.cond.Wait()
	}

	c.count--
	if c.count > 0 {
		c.cond.Signal()
	}
	return nil
}

// TryRecv is the non-blocking variant of Recv; it never fails, returning
// false whenever there is no pending signal to consume right now.
func (c *SignalChannel) TryRecv() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.count == 0 || !c.state.load().receivable() {
		return false
	}

	c.count--
	return true
}

// Kill resets the counter to zero, wakes every waiter, and advances to
// StateDead. It is immediate and infallible.
func (c *SignalChannel) Kill() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.load() == StateDead {
		return
	}

	c.count = 0
	c.state.store(StateDead)
	c.cond.Broadcast()
}

// Joinable reports whether the channel is currently in StateListening.
func (c *SignalChannel) Joinable() bool {
	return c.state.load() == StateListening
}

// State returns the channel's current lifecycle state.
func (c *SignalChannel) State() ChannelState {
	return c.state.load()
}
