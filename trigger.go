package scrollz

import "sync"

// Trigger is a manual source of signals for a Paginator. A new Trigger
// already holds the initial signal that loads the first page.
//
// Fire never blocks: while a signal is still queued, further fires are
// dropped, which matches how a Paginator treats signals that arrive while a
// page is in flight.
type Trigger struct {
	ch     chan Result[Signal]
	mu     sync.Mutex
	closed bool
}

// NewTrigger creates a Trigger whose stream starts with one signal.
func NewTrigger() *Trigger {
	t := &Trigger{ch: make(chan Result[Signal], 1)}
	t.ch <- NewSuccess(Signal{})
	return t
}

// Signals returns the trigger stream. It closes after Close.
func (t *Trigger) Signals() <-chan Result[Signal] {
	return t.ch
}

// Fire queues a signal. It returns false if a signal was already queued or
// the trigger is closed.
func (t *Trigger) Fire() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return false
	}

	select {
	case t.ch <- NewSuccess(Signal{}):
		return true
	default:
		return false
	}
}

// Close completes the trigger stream. It is safe to call more than once.
func (t *Trigger) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.closed {
		t.closed = true
		close(t.ch)
	}
}
