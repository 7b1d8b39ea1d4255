// Package composite models a work plan as a tree where single steps and
// groups of steps expose the same interface.
//
// Callers ask any Task for its duration or completion state without knowing
// whether it is one step or a whole subtree; Plan aggregates recursively.
package composite

import "time"

// Task is the component interface shared by steps and plans.
type Task interface {
	// Name identifies the task. Names need not be unique; traversal order
	// decides which duplicate Find returns.
	Name() string
	// Duration is the total time the task represents, recursively for groups.
	Duration() time.Duration
	// Done reports whether the task is complete. A group is done when all
	// of its children are; an empty group counts as done.
	Done() bool
}

// Step is a leaf task.
type Step struct {
	name     string
	duration time.Duration
	done     bool
}

// NewStep creates a leaf task with the given estimated duration.
func NewStep(name string, d time.Duration) *Step {
	return &Step{name: name, duration: d}
}

func (s *Step) Name() string            { return s.name }
func (s *Step) Duration() time.Duration { return s.duration }
func (s *Step) Done() bool              { return s.done }

// MarkDone marks the step complete.
func (s *Step) MarkDone() { s.done = true }

// Plan is a composite task holding an ordered list of children.
type Plan struct {
	name     string
	children []Task
}

// NewPlan creates a group with the given children.
func NewPlan(name string, children ...Task) *Plan {
	return &Plan{name: name, children: children}
}

func (p *Plan) Name() string { return p.name }

// Add appends a child and returns the plan for chaining.
func (p *Plan) Add(t Task) *Plan {
	p.children = append(p.children, t)
	return p
}

// Children returns the direct children in insertion order.
func (p *Plan) Children() []Task { return p.children }

// Duration is the recursive sum over all children.
func (p *Plan) Duration() time.Duration {
	var total time.Duration
	for _, c := range p.children {
		total += c.Duration()
	}
	return total
}

// Done reports whether every child is done. An empty plan is done.
func (p *Plan) Done() bool {
	for _, c := range p.children {
		if !c.Done() {
			return false
		}
	}
	return true
}

// Walk visits the plan and every descendant depth-first, parents before
// children, in insertion order. Depth is 0 for the receiver itself.
func (p *Plan) Walk(fn func(depth int, t Task)) {
	walk(p, 0, fn)
}

func walk(t Task, depth int, fn func(int, Task)) {
	fn(depth, t)
	if g, ok := t.(*Plan); ok {
		for _, c := range g.children {
			walk(c, depth+1, fn)
		}
	}
}

// Find returns the first task (depth-first, insertion order) whose name
// matches, or nil when absent. The receiver itself is a candidate.
func (p *Plan) Find(name string) Task {
	var found Task
	p.Walk(func(_ int, t Task) {
		if found == nil && t.Name() == name {
			found = t
		}
	})
	return found
}
