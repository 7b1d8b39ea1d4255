// Package observer implements publish/subscribe fan-out for domain events.
//
// The Dispatcher owns its subscriber set from a single goroutine and is
// driven entirely through channels, so no mutexes guard the hot path. A
// subscriber that cannot keep up loses events rather than stalling the
// dispatch loop; Dropped exposes how often that happened.
package observer

import (
	"sync/atomic"
)

// Dispatcher fans events of type T out to subscribers.
type Dispatcher[T any] struct {
	subscribeCh   chan chan T
	unsubscribeCh chan chan T
	publishCh     chan T
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
	dropped atomic.Int64

	buffer int
}

// NewDispatcher creates a dispatcher whose subscriber channels hold up to
// buffer pending events (minimum 1).
func NewDispatcher[T any](buffer int) *Dispatcher[T] {
	if buffer < 1 {
		buffer = 1
	}
	d := &Dispatcher[T]{
		subscribeCh:   make(chan chan T),
		unsubscribeCh: make(chan chan T),
		publishCh:     make(chan T, 256),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
		buffer:        buffer,
	}
	go d.run()
	return d
}

func (d *Dispatcher[T]) run() {
	defer close(d.stopped)

	subs := make(map[chan T]struct{})

	broadcast := func(ev T) {
		for ch := range subs {
			select {
			case ch <- ev:
			default:
				// Subscriber buffer full; drop instead of blocking the loop.
				d.dropped.Add(1)
			}
		}
	}

	for {
		select {
		case <-d.stopCh:
			for ch := range subs {
				close(ch)
			}
			return

		case ch := <-d.subscribeCh:
			subs[ch] = struct{}{}

		case ch := <-d.unsubscribeCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case ev := <-d.publishCh:
			broadcast(ev)

		case resp := <-d.countReqCh:
			resp <- len(subs)
		}
	}
}

// Subscribe registers a new observer and returns its event channel. The
// channel is closed on Unsubscribe or Close. After Close, Subscribe returns
// an already-closed channel.
func (d *Dispatcher[T]) Subscribe() chan T {
	ch := make(chan T, d.buffer)
	if d.closed.Load() {
		close(ch)
		return ch
	}
	select {
	case d.subscribeCh <- ch:
	case <-d.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes an observer and closes its channel.
func (d *Dispatcher[T]) Unsubscribe(ch chan T) {
	if d.closed.Load() {
		return
	}
	select {
	case d.unsubscribeCh <- ch:
	case <-d.stopped:
	}
}

// Publish sends an event to all subscribers. Publishing after Close is a
// no-op.
func (d *Dispatcher[T]) Publish(ev T) {
	if d.closed.Load() {
		return
	}
	select {
	case d.publishCh <- ev:
	case <-d.stopped:
	}
}

// SubscriberCount returns the number of registered observers.
func (d *Dispatcher[T]) SubscriberCount() int {
	if d.closed.Load() {
		return 0
	}
	resp := make(chan int, 1)
	select {
	case d.countReqCh <- resp:
	case <-d.stopped:
		return 0
	}
	select {
	case n := <-resp:
		return n
	case <-d.stopped:
		return 0
	}
}

// Closed reports whether Close has been called.
func (d *Dispatcher[T]) Closed() bool {
	return d.closed.Load()
}

// Dropped returns how many events were discarded because a subscriber's
// buffer was full.
func (d *Dispatcher[T]) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops the dispatch loop and closes every subscriber channel.
// Close is idempotent and safe to call concurrently.
func (d *Dispatcher[T]) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.stopCh)
	}
	<-d.stopped
}
