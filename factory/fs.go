package factory

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fsStore implements Store backed by the local file system.
type fsStore struct {
	root string // absolute path to the store root
}

// NewFS creates a file-system store rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("factory: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("factory: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("factory: root is not a directory: %s", abs)
	}
	return &fsStore{root: abs}, nil
}

// safePath resolves a relative path against the root and rejects any result
// that escapes it (directory traversal).
func (f *fsStore) safePath(rel string) (string, error) {
	if rel == "" {
		return f.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("factory: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(f.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("factory: resolve path: %w", err)
	}
	if !strings.HasPrefix(abs, f.root+string(os.PathSeparator)) && abs != f.root {
		return "", fmt.Errorf("factory: path escapes store root: %s", rel)
	}
	return abs, nil
}

func (f *fsStore) List(dir string) ([]FileInfo, error) {
	base, err := f.safePath(dir)
	if err != nil {
		return nil, err
	}
	var out []FileInfo
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(f.root, p)
		out = append(out, FileInfo{
			Path:    rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("factory: list: %w", err)
	}
	return out, nil
}

func (f *fsStore) Read(path string) ([]byte, error) {
	abs, err := f.safePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("factory: read %s: %w", path, err)
	}
	return data, nil
}

// Write is atomic: tmp file, fsync, rename.
func (f *fsStore) Write(path string, content []byte) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("factory: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".mannaz-tmp-*")
	if err != nil {
		return fmt.Errorf("factory: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("factory: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("factory: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("factory: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("factory: rename: %w", err)
	}
	success = true
	return nil
}

func (f *fsStore) Delete(path string) error {
	abs, err := f.safePath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("factory: delete %s: %w", path, err)
	}
	return nil
}

func (f *fsStore) Move(oldPath, newPath string) error {
	absOld, err := f.safePath(oldPath)
	if err != nil {
		return err
	}
	absNew, err := f.safePath(newPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absNew), 0o755); err != nil {
		return fmt.Errorf("factory: mkdir for move: %w", err)
	}
	if err := os.Rename(absOld, absNew); err != nil {
		return fmt.Errorf("factory: move: %w", err)
	}
	return nil
}
