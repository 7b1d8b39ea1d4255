// Package singleton holds the process-wide application settings, loaded
// exactly once.
//
// The cost of the pattern is global state; this package pays it openly:
// Get is the single accessor, a load failure is sticky, and Reset exists so
// tests can exchange the instance. Nothing else in the module mutates it.
package singleton

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Settings is the application configuration.
type Settings struct {
	App    AppSettings    `yaml:"app"`
	Vault  VaultSettings  `yaml:"vault"`
	Ledger LedgerSettings `yaml:"ledger"`
}

// Validate validates the full settings tree.
func (s *Settings) Validate() error {
	if err := s.Vault.Validate(); err != nil {
		return err
	}
	return s.Ledger.Validate()
}

// AppSettings holds application-level settings.
type AppSettings struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// VaultSettings holds the demo file vault location.
type VaultSettings struct {
	Path string `yaml:"path"`
	// Kind selects the store implementation ("fs" or "memory").
	Kind string `yaml:"kind"`
}

// Validate validates the vault settings.
func (s *VaultSettings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Path, validation.Required),
		validation.Field(&s.Kind, validation.Required, validation.In("fs", "memory")),
	)
}

// LedgerSettings holds the SQLite ledger location.
type LedgerSettings struct {
	Path string `yaml:"path"`
}

// Validate validates the ledger settings.
func (s *LedgerSettings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Path, validation.Required),
	)
}

// Defaults returns settings with sensible default values.
func Defaults() *Settings {
	return &Settings{
		App: AppSettings{
			LogLevel: slog.LevelInfo,
		},
		Vault: VaultSettings{
			Path: "./vault",
			Kind: "fs",
		},
		Ledger: LedgerSettings{
			Path: "./mannaz.db",
		},
	}
}

// String summarizes the settings for logs.
func (s *Settings) String() string {
	return fmt.Sprintf("log_level=%s vault=%s(%s) ledger=%s",
		s.App.LogLevel, s.Vault.Path, s.Vault.Kind, s.Ledger.Path)
}
