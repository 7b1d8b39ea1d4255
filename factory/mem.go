package factory

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// memStore implements Store with an in-process map. It is safe for
// concurrent use and intended for tests and demos.
type memStore struct {
	mu    sync.RWMutex
	files map[string]memFile
}

type memFile struct {
	content []byte
	modTime time.Time
}

// NewMem creates an empty in-memory store.
func NewMem() Store {
	return &memStore{files: map[string]memFile{}}
}

func normalize(p string) string {
	return strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(p, "\\", "/")), "/")
}

func (m *memStore) List(dir string) ([]FileInfo, error) {
	prefix := normalize(dir)
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []FileInfo
	for p, f := range m.files {
		if prefix != "" && p != prefix && !strings.HasPrefix(p, prefix+"/") {
			continue
		}
		out = append(out, FileInfo{Path: p, Size: int64(len(f.content)), ModTime: f.modTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *memStore) Read(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[normalize(p)]
	if !ok {
		return nil, fmt.Errorf("factory: read %s: %w", p, os.ErrNotExist)
	}
	cp := make([]byte, len(f.content))
	copy(cp, f.content)
	return cp, nil
}

func (m *memStore) Write(p string, content []byte) error {
	cp := make([]byte, len(content))
	copy(cp, content)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[normalize(p)] = memFile{content: cp, modTime: time.Now()}
	return nil
}

func (m *memStore) Delete(p string) error {
	key := normalize(p)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("factory: delete %s: %w", p, os.ErrNotExist)
	}
	delete(m.files, key)
	return nil
}

func (m *memStore) Move(oldPath, newPath string) error {
	oldKey, newKey := normalize(oldPath), normalize(newPath)
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[oldKey]
	if !ok {
		return fmt.Errorf("factory: move %s: %w", oldPath, os.ErrNotExist)
	}
	delete(m.files, oldKey)
	m.files[newKey] = f
	return nil
}
