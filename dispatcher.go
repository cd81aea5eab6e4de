package networkingx

import "sync"

// Dispatcher redelivers completion callbacks onto a designated execution
// context. Whichever goroutine the transport completes on, the final
// callback for an asynchronous call runs wherever the dispatcher says.
type Dispatcher interface {
	Dispatch(fn func())
}

// InlineDispatcher runs callbacks immediately on the calling goroutine.
type InlineDispatcher struct{}

// Dispatch implements Dispatcher.
func (InlineDispatcher) Dispatch(fn func()) { fn() }

// SerialDispatcher funnels callbacks through one goroutine in FIFO order,
// acting as the application's primary interaction context. Callbacks from
// concurrent calls are delivered in arrival order, never interleaved.
type SerialDispatcher struct {
	queue     chan func()
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewSerialDispatcher creates a serial dispatcher. Its goroutine starts on
// the first Dispatch, so an idle dispatcher costs nothing.
func NewSerialDispatcher() *SerialDispatcher {
	return &SerialDispatcher{
		queue: make(chan func(), 128),
		done:  make(chan struct{}),
	}
}

func (d *SerialDispatcher) run() {
	for {
		select {
		case fn := <-d.queue:
			fn()
		case <-d.done:
			return
		}
	}
}

// Dispatch implements Dispatcher. Callbacks enqueued after Close are dropped.
func (d *SerialDispatcher) Dispatch(fn func()) {
	d.startOnce.Do(func() { go d.run() })
	select {
	case d.queue <- fn:
	case <-d.done:
	}
}

// Close stops the dispatcher goroutine.
func (d *SerialDispatcher) Close() {
	d.closeOnce.Do(func() { close(d.done) })
}
