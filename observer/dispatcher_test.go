package observer

import (
	"testing"
	"time"
)

func TestDispatcher_SubscribeUnsubscribe(t *testing.T) {
	d := NewDispatcher[string](4)
	defer d.Close()

	if d.SubscriberCount() != 0 {
		t.Fatalf("count = %d, want 0", d.SubscriberCount())
	}
	ch := d.Subscribe()
	if d.SubscriberCount() != 1 {
		t.Fatalf("count = %d, want 1", d.SubscriberCount())
	}
	d.Unsubscribe(ch)
	if d.SubscriberCount() != 0 {
		t.Fatalf("count = %d, want 0 after unsubscribe", d.SubscriberCount())
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestDispatcher_PublishReachesAllSubscribers(t *testing.T) {
	d := NewDispatcher[int](4)
	defer d.Close()

	a := d.Subscribe()
	b := d.Subscribe()
	d.Publish(42)

	for name, ch := range map[string]chan int{"a": a, "b": b} {
		select {
		case v := <-ch:
			if v != 42 {
				t.Errorf("%s got %d, want 42", name, v)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s: timeout waiting for event", name)
		}
	}
}

func TestDispatcher_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	d := NewDispatcher[int](2)
	defer d.Close()

	slow := d.Subscribe() // never drained; buffer holds 2
	fast := d.Subscribe()

	// Drain the fast subscriber continuously so it never fills up.
	fastCount := make(chan int, 1)
	go func() {
		n := 0
		for range fast {
			n++
		}
		fastCount <- n
	}()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publishing blocked on a slow subscriber")
	}

	// Let the loop finish broadcasting, then shut down to close channels.
	time.Sleep(100 * time.Millisecond)
	d.Close()

	if n := <-fastCount; n == 0 {
		t.Error("fast subscriber received nothing")
	}
	if d.Dropped() == 0 {
		t.Error("expected dropped events for the slow subscriber")
	}
	if len(slow) != 2 {
		t.Errorf("slow buffer = %d, want full buffer of 2", len(slow))
	}
}

func TestDispatcher_CloseIsIdempotentAndFinal(t *testing.T) {
	d := NewDispatcher[string](1)
	ch := d.Subscribe()

	d.Close()
	d.Close() // second close must not panic

	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed")
	}

	// Everything after Close is a quiet no-op.
	d.Publish("late")
	d.Unsubscribe(ch)
	if d.SubscriberCount() != 0 {
		t.Errorf("count = %d, want 0", d.SubscriberCount())
	}
	late := d.Subscribe()
	if _, ok := <-late; ok {
		t.Error("Subscribe after Close should return a closed channel")
	}
}
