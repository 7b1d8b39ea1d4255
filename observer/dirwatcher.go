package observer

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// File event kinds.
const (
	FileCreated = "created"
	FileUpdated = "updated"
	FileDeleted = "deleted"
)

// FileEvent describes one change under the watched root. Path is relative
// to the root.
type FileEvent struct {
	Kind string
	Path string
}

// DirWatcher is a subject backed by fsnotify: file changes under root are
// translated into FileEvents and fanned out to subscribers. Directories
// created while watching are picked up automatically.
type DirWatcher struct {
	root   string
	logger *slog.Logger
	d      *Dispatcher[FileEvent]
}

// NewDirWatcher creates a watcher subject for root. The directory must
// exist.
func NewDirWatcher(root string, logger *slog.Logger) (*DirWatcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("observer: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("observer: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("observer: root is not a directory: %s", abs)
	}
	return &DirWatcher{
		root:   abs,
		logger: logger,
		d:      NewDispatcher[FileEvent](256),
	}, nil
}

// Subscribe registers an observer for file events.
func (w *DirWatcher) Subscribe() chan FileEvent { return w.d.Subscribe() }

// Unsubscribe removes an observer.
func (w *DirWatcher) Unsubscribe(ch chan FileEvent) { w.d.Unsubscribe(ch) }

// Close stops event delivery. Watch must have returned (or never run).
func (w *DirWatcher) Close() { w.d.Close() }

// Watch processes file system events until ctx is cancelled. It returns nil
// on cancellation.
func (w *DirWatcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("observer: start watcher: %w", err)
	}
	defer fw.Close()

	if err := addDirsRecursive(fw, w.root); err != nil {
		return fmt.Errorf("observer: watch tree: %w", err)
	}

	w.logger.Info("watcher started", slog.String("root", w.root))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, ev)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

func (w *DirWatcher) handle(fw *fsnotify.Watcher, ev fsnotify.Event) {
	// New directories join the watch list; their contents surface as
	// individual create events on most platforms.
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := addDirsRecursive(fw, ev.Name); err != nil {
				w.logger.Warn("watch new dir failed",
					slog.String("path", ev.Name),
					slog.String("error", err.Error()))
			}
			return
		}
	}

	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		w.publish(FileCreated, rel)
	case ev.Op&fsnotify.Write != 0:
		w.publish(FileUpdated, rel)
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// Rename surfaces on the old path only; treat it as a delete. The
		// new location arrives as its own create event when still watched.
		w.publish(FileDeleted, rel)
	}
}

func (w *DirWatcher) publish(kind, rel string) {
	w.logger.Debug("file event", slog.String("kind", kind), slog.String("path", rel))
	w.d.Publish(FileEvent{Kind: kind, Path: rel})
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
}
