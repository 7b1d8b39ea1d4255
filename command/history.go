package command

import (
	"context"
	"fmt"
	"sync"
)

// History is a LIFO stack of applied commands supporting undo.
// It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	stack []Command
}

// NewHistory creates an empty history.
func NewHistory() *History { return &History{} }

// Push records an applied command.
func (h *History) Push(c Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack = append(h.stack, c)
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stack)
}

// UndoLast undoes the most recent command and pops it. On failure the
// command stays on the stack.
func (h *History) UndoLast(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.stack) == 0 {
		return nil
	}
	last := h.stack[len(h.stack)-1]
	if err := last.Undo(ctx); err != nil {
		return fmt.Errorf("command: undo %s: %w", last.Name(), err)
	}
	h.stack = h.stack[:len(h.stack)-1]
	return nil
}

// UndoAll unwinds the stack in reverse order, stopping at the first failure.
func (h *History) UndoAll(ctx context.Context) error {
	for {
		h.mu.Lock()
		n := len(h.stack)
		h.mu.Unlock()
		if n == 0 {
			return nil
		}
		if err := h.UndoLast(ctx); err != nil {
			return err
		}
	}
}
