// Package factory constructs file stores behind a common interface.
//
// Callers name the kind of store they want ("fs", "memory") and receive a
// Store without knowing the concrete type; new kinds plug in through
// Register. The interface is what the rest of the module programs against.
package factory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/starford/mannaz/internal/apperr"
)

// FileInfo is the lightweight listing entry returned by Store.List.
type FileInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Store is the interface for file operations against a rooted tree.
// All paths are relative to the store root.
type Store interface {
	// List returns metadata for every file under dir, recursively.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
}

// Factory builds a Store rooted at root. Kinds that need no root (such as
// the in-memory store) ignore it.
type Factory func(root string) (Store, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

func init() {
	registry["fs"] = func(root string) (Store, error) { return NewFS(root) }
	registry["memory"] = func(string) (Store, error) { return NewMem(), nil }
}

// Register adds a factory for kind. Registering an existing kind fails with
// apperr.ErrConflict.
func Register(kind string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registry[kind]; ok {
		return fmt.Errorf("factory: kind %q: %w", kind, apperr.ErrConflict)
	}
	registry[kind] = f
	return nil
}

// Kinds returns the registered store kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New constructs a Store of the given kind. Unknown kinds fail with
// apperr.ErrNotFound.
func New(kind, root string) (Store, error) {
	mu.RLock()
	f, ok := registry[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("factory: unknown store kind %q: %w", kind, apperr.ErrNotFound)
	}
	return f(root)
}
