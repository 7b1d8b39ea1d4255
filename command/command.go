// Package command encapsulates undoable file operations as objects.
//
// A Command carries everything needed to apply an operation and to reverse
// it later; History keeps the applied commands on a stack for LIFO undo, and
// Dispatcher runs independent batches concurrently.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/starford/mannaz/factory"
)

// Command is an operation that can be applied and reversed.
type Command interface {
	// ID uniquely identifies this command instance.
	ID() uuid.UUID
	// Name describes the operation for logs.
	Name() string
	// Do applies the operation.
	Do(ctx context.Context) error
	// Undo reverses a previously applied operation.
	Undo(ctx context.Context) error
}

// WriteFile writes content to a path in a store and restores the previous
// content (or absence) on undo.
type WriteFile struct {
	id      uuid.UUID
	store   factory.Store
	path    string
	content []byte

	prev    []byte
	existed bool
}

// NewWriteFile creates a write command.
func NewWriteFile(store factory.Store, path string, content []byte) *WriteFile {
	return &WriteFile{id: uuid.New(), store: store, path: path, content: content}
}

func (c *WriteFile) ID() uuid.UUID { return c.id }
func (c *WriteFile) Name() string  { return fmt.Sprintf("write %s", c.path) }

func (c *WriteFile) Do(_ context.Context) error {
	prev, err := c.store.Read(c.path)
	if err == nil {
		c.prev = prev
		c.existed = true
	}
	return c.store.Write(c.path, c.content)
}

func (c *WriteFile) Undo(_ context.Context) error {
	if c.existed {
		return c.store.Write(c.path, c.prev)
	}
	return c.store.Delete(c.path)
}

// MoveFile renames a file in a store; undo moves it back.
type MoveFile struct {
	id       uuid.UUID
	store    factory.Store
	from, to string
}

// NewMoveFile creates a move command.
func NewMoveFile(store factory.Store, from, to string) *MoveFile {
	return &MoveFile{id: uuid.New(), store: store, from: from, to: to}
}

func (c *MoveFile) ID() uuid.UUID { return c.id }
func (c *MoveFile) Name() string  { return fmt.Sprintf("move %s -> %s", c.from, c.to) }

func (c *MoveFile) Do(_ context.Context) error   { return c.store.Move(c.from, c.to) }
func (c *MoveFile) Undo(_ context.Context) error { return c.store.Move(c.to, c.from) }

// DeleteFile removes a file, capturing its content so undo can restore it.
type DeleteFile struct {
	id    uuid.UUID
	store factory.Store
	path  string

	prev []byte
}

// NewDeleteFile creates a delete command.
func NewDeleteFile(store factory.Store, path string) *DeleteFile {
	return &DeleteFile{id: uuid.New(), store: store, path: path}
}

func (c *DeleteFile) ID() uuid.UUID { return c.id }
func (c *DeleteFile) Name() string  { return fmt.Sprintf("delete %s", c.path) }

func (c *DeleteFile) Do(_ context.Context) error {
	prev, err := c.store.Read(c.path)
	if err != nil {
		return fmt.Errorf("command: capture %s before delete: %w", c.path, err)
	}
	c.prev = prev
	return c.store.Delete(c.path)
}

func (c *DeleteFile) Undo(_ context.Context) error {
	// prev is nil only when Do never ran; a deleted empty file captures a
	// non-nil empty slice.
	if c.prev == nil {
		return fmt.Errorf("command: undo delete %s: nothing captured: %w", c.path, os.ErrInvalid)
	}
	return c.store.Write(c.path, c.prev)
}
