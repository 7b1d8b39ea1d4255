package singleton

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func withConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigPath, path)
	Reset()
	t.Cleanup(Reset)
}

func TestGet_LoadsConfiguredFile(t *testing.T) {
	withConfig(t, "vault:\n  path: /data/vault\n  kind: memory\nledger:\n  path: /data/ledger.db\n")

	s, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Vault.Path != "/data/vault" || s.Vault.Kind != "memory" {
		t.Errorf("vault = %+v", s.Vault)
	}
	if s.Ledger.Path != "/data/ledger.db" {
		t.Errorf("ledger = %+v", s.Ledger)
	}
}

func TestGet_SameInstanceAcrossGoroutines(t *testing.T) {
	withConfig(t, "vault:\n  path: ./v\n  kind: fs\nledger:\n  path: ./l.db\n")

	const n = 16
	results := make([]*Settings, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := Get()
			if err != nil {
				t.Errorf("Get: %v", err)
				return
			}
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatal("Get returned different instances")
		}
	}
}

func TestGet_MissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "absent.yaml"))
	Reset()
	t.Cleanup(Reset)

	s, err := Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := Defaults()
	if s.Vault.Path != want.Vault.Path || s.Ledger.Path != want.Ledger.Path {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestGet_InvalidConfigIsStickyUntilReset(t *testing.T) {
	// kind "tape" fails validation.
	withConfig(t, "vault:\n  path: ./v\n  kind: tape\nledger:\n  path: ./l.db\n")

	if _, err := Get(); err == nil {
		t.Fatal("expected validation error")
	}
	// The failure repeats without reloading.
	if _, err := Get(); err == nil {
		t.Fatal("expected sticky error on second Get")
	}

	withConfig(t, "vault:\n  path: ./v\n  kind: fs\nledger:\n  path: ./l.db\n")
	if _, err := Get(); err != nil {
		t.Fatalf("Get after Reset: %v", err)
	}
}

func TestValidate_RequiresPaths(t *testing.T) {
	s := Defaults()
	s.Vault.Path = ""
	if err := s.Validate(); err == nil {
		t.Error("empty vault path should fail validation")
	}

	s = Defaults()
	s.Ledger.Path = ""
	if err := s.Validate(); err == nil {
		t.Error("empty ledger path should fail validation")
	}
}
