package observer

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/starford/mannaz/internal/apperr"
)

// Payroll event kinds.
const (
	KindHired      = "hired"
	KindRaise      = "raise"
	KindPaid       = "paid"
	KindTerminated = "terminated"
)

// PayrollEvent describes one salary-affecting change.
type PayrollEvent struct {
	Kind     string
	Employee string
	// Amount is the salary after the change, or the payout for KindPaid.
	Amount int64
}

// Payroll is the subject of the chapter: every mutation publishes an event
// to all subscribed observers. Salaries are in cents.
type Payroll struct {
	d *Dispatcher[PayrollEvent]

	mu       sync.Mutex
	salaries map[string]int64
}

// NewPayroll creates an empty payroll.
func NewPayroll() *Payroll {
	return &Payroll{
		d:        NewDispatcher[PayrollEvent](64),
		salaries: make(map[string]int64),
	}
}

// Subscribe registers an observer for payroll events.
func (p *Payroll) Subscribe() chan PayrollEvent { return p.d.Subscribe() }

// Unsubscribe removes an observer.
func (p *Payroll) Unsubscribe(ch chan PayrollEvent) { p.d.Unsubscribe(ch) }

// Close stops event delivery and closes all observer channels. Mutations
// after Close fail with apperr.ErrClosed.
func (p *Payroll) Close() { p.d.Close() }

// Hire adds an employee with a starting salary.
func (p *Payroll) Hire(name string, salary int64) error {
	if p.d.Closed() {
		return fmt.Errorf("observer: hire %s: %w", name, apperr.ErrClosed)
	}
	p.mu.Lock()
	if _, ok := p.salaries[name]; ok {
		p.mu.Unlock()
		return fmt.Errorf("observer: hire %s: %w", name, apperr.ErrConflict)
	}
	p.salaries[name] = salary
	p.mu.Unlock()

	p.d.Publish(PayrollEvent{Kind: KindHired, Employee: name, Amount: salary})
	return nil
}

// Raise increases an employee's salary by delta.
func (p *Payroll) Raise(name string, delta int64) error {
	if p.d.Closed() {
		return fmt.Errorf("observer: raise %s: %w", name, apperr.ErrClosed)
	}
	p.mu.Lock()
	cur, ok := p.salaries[name]
	if !ok {
		p.mu.Unlock()
		return fmt.Errorf("observer: raise %s: %w", name, apperr.ErrNotFound)
	}
	p.salaries[name] = cur + delta
	next := p.salaries[name]
	p.mu.Unlock()

	p.d.Publish(PayrollEvent{Kind: KindRaise, Employee: name, Amount: next})
	return nil
}

// Terminate removes an employee.
func (p *Payroll) Terminate(name string) error {
	if p.d.Closed() {
		return fmt.Errorf("observer: terminate %s: %w", name, apperr.ErrClosed)
	}
	p.mu.Lock()
	if _, ok := p.salaries[name]; !ok {
		p.mu.Unlock()
		return fmt.Errorf("observer: terminate %s: %w", name, apperr.ErrNotFound)
	}
	delete(p.salaries, name)
	p.mu.Unlock()

	p.d.Publish(PayrollEvent{Kind: KindTerminated, Employee: name})
	return nil
}

// RunPayday publishes one paid event per employee, in name order, and
// returns the total paid out.
func (p *Payroll) RunPayday() int64 {
	p.mu.Lock()
	names := make([]string, 0, len(p.salaries))
	for n := range p.salaries {
		names = append(names, n)
	}
	sort.Strings(names)
	payouts := make([]PayrollEvent, 0, len(names))
	var total int64
	for _, n := range names {
		payouts = append(payouts, PayrollEvent{Kind: KindPaid, Employee: n, Amount: p.salaries[n]})
		total += p.salaries[n]
	}
	p.mu.Unlock()

	for _, ev := range payouts {
		p.d.Publish(ev)
	}
	return total
}

// Salary returns an employee's current salary.
func (p *Payroll) Salary(name string) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.salaries[name]
	if !ok {
		return 0, fmt.Errorf("observer: salary %s: %w", name, apperr.ErrNotFound)
	}
	return s, nil
}

// LogEvents consumes events from ch and writes one slog line per event
// until the channel is closed. Run it in its own goroutine; it is the audit
// observer of the chapter.
func LogEvents(logger *slog.Logger, ch <-chan PayrollEvent) {
	for ev := range ch {
		logger.Info("payroll event",
			slog.String("kind", ev.Kind),
			slog.String("employee", ev.Employee),
			slog.Int64("amount_cents", ev.Amount))
	}
}
