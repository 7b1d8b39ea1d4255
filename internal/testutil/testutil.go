// Package testutil provides shared test helpers for setting up stores and
// ledgers.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/mannaz/factory"
	"github.com/starford/mannaz/internal/ledger"
)

// TestLedger creates a temporary SQLite ledger that is automatically
// cleaned up.
func TestLedger(t *testing.T) *ledger.Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "mannaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := ledger.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestVault creates a temporary directory with a file-system store.
func TestVault(t *testing.T) (string, factory.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := factory.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}
