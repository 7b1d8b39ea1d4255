package observer

import (
	"bytes"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/starford/mannaz/internal/apperr"
)

func collect(ch chan PayrollEvent, n int, timeout time.Duration) []PayrollEvent {
	var out []PayrollEvent
	deadline := time.After(timeout)
	for len(out) < n {
		select {
		case ev, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-deadline:
			return out
		}
	}
	return out
}

func TestPayroll_HireRaisePayTerminate(t *testing.T) {
	p := NewPayroll()
	defer p.Close()
	ch := p.Subscribe()

	if err := p.Hire("ada", 500_000); err != nil {
		t.Fatalf("Hire: %v", err)
	}
	if err := p.Hire("grace", 450_000); err != nil {
		t.Fatalf("Hire: %v", err)
	}
	if err := p.Raise("ada", 50_000); err != nil {
		t.Fatalf("Raise: %v", err)
	}
	total := p.RunPayday()
	if total != 1_000_000 {
		t.Errorf("payday total = %d, want 1000000", total)
	}
	if err := p.Terminate("grace"); err != nil {
		t.Fatalf("Terminate: %v", err)
	}

	evs := collect(ch, 6, 2*time.Second)
	if len(evs) != 6 {
		t.Fatalf("got %d events, want 6: %+v", len(evs), evs)
	}
	wantKinds := []string{KindHired, KindHired, KindRaise, KindPaid, KindPaid, KindTerminated}
	for i, k := range wantKinds {
		if evs[i].Kind != k {
			t.Errorf("event[%d].Kind = %q, want %q", i, evs[i].Kind, k)
		}
	}
	// Payday events are ordered by name.
	if evs[3].Employee != "ada" || evs[4].Employee != "grace" {
		t.Errorf("payday order: %+v", evs[3:5])
	}
	if evs[2].Amount != 550_000 {
		t.Errorf("raise amount = %d, want new salary 550000", evs[2].Amount)
	}
}

func TestPayroll_Errors(t *testing.T) {
	p := NewPayroll()
	defer p.Close()

	_ = p.Hire("ada", 1)
	if err := p.Hire("ada", 2); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("double hire err = %v, want ErrConflict", err)
	}
	if err := p.Raise("nobody", 1); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("raise err = %v, want ErrNotFound", err)
	}
	if err := p.Terminate("nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("terminate err = %v, want ErrNotFound", err)
	}
	if _, err := p.Salary("nobody"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("salary err = %v, want ErrNotFound", err)
	}
}

func TestPayroll_MutationsAfterCloseFail(t *testing.T) {
	p := NewPayroll()
	_ = p.Hire("ada", 1)
	p.Close()

	if err := p.Hire("bob", 1); !errors.Is(err, apperr.ErrClosed) {
		t.Errorf("hire err = %v, want ErrClosed", err)
	}
	if err := p.Raise("ada", 1); !errors.Is(err, apperr.ErrClosed) {
		t.Errorf("raise err = %v, want ErrClosed", err)
	}
	if err := p.Terminate("ada"); !errors.Is(err, apperr.ErrClosed) {
		t.Errorf("terminate err = %v, want ErrClosed", err)
	}
	// Reads still work on the frozen state.
	if s, err := p.Salary("ada"); err != nil || s != 1 {
		t.Errorf("salary = %d, %v", s, err)
	}
}

func TestPayroll_MultipleObserversSeeSameEvents(t *testing.T) {
	p := NewPayroll()
	defer p.Close()
	a := p.Subscribe()
	b := p.Subscribe()

	_ = p.Hire("ada", 100)

	for name, ch := range map[string]chan PayrollEvent{"a": a, "b": b} {
		evs := collect(ch, 1, time.Second)
		if len(evs) != 1 || evs[0].Employee != "ada" {
			t.Errorf("%s: events = %+v", name, evs)
		}
	}
}

// syncWriter serializes writes from the audit goroutine.
type syncWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *syncWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestLogEvents_AuditObserver(t *testing.T) {
	var out syncWriter
	logger := slog.New(slog.NewJSONHandler(&out, nil))

	p := NewPayroll()
	ch := p.Subscribe()
	done := make(chan struct{})
	go func() {
		LogEvents(logger, ch)
		close(done)
	}()

	_ = p.Hire("ada", 500)
	time.Sleep(100 * time.Millisecond)
	p.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit observer did not stop after Close")
	}

	logged := out.String()
	for _, want := range []string{`"kind":"hired"`, `"employee":"ada"`, `"amount_cents":500`} {
		if !bytes.Contains([]byte(logged), []byte(want)) {
			t.Errorf("log missing %s:\n%s", want, logged)
		}
	}
}
