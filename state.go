package chanpool

import "sync/atomic"

// ChannelState is the lifecycle of a Channel.
//
// Transitions are monotonic in "shutdownness": Listening may advance to
// Joining (via Join) or to Killing (via Kill, or a destructor-equivalent
// Close). Joining may advance to Dead once the queue drains, or be
// overridden by Killing. Killing always advances to Dead. Dead is terminal.
type ChannelState int32

const (
	// StateListening accepts both Send and Recv.
	StateListening ChannelState = iota

	// StateJoining rejects Send; Recv still drains the remaining queue.
	StateJoining

	// StateKilling rejects Send and Recv and discards the queue in place.
	StateKilling

	// StateDead rejects every operation.
	StateDead
)

func (s ChannelState) String() string {
	switch s {
	case StateListening:
		return "Listening"
	case StateJoining:
		return "Joining"
	case StateKilling:
		return "Killing"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// lifecycle is the atomic state cell shared by Channel and SignalChannel.
// Reads that gate behavior use acquire semantics (atomic.Int32.Load already
// provides this on all supported platforms); writes that publish a
// transition happen under the owning mutex so waiters observe a consistent
// queue/counter alongside the new state.
type lifecycle struct {
	v atomic.Int32
}

func (l *lifecycle) load() ChannelState { return ChannelState(l.v.Load()) }

func (l *lifecycle) store(s ChannelState) { l.v.Store(int32(s)) }

// receivable reports whether a state still permits Recv to observe queued
// work (Listening or Joining); Killing and Dead never do.
func (s ChannelState) receivable() bool { return s == StateListening || s == StateJoining }
