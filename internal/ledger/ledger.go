// Package ledger persists bank accounts in SQLite. It is the real subject
// the proxy chapter wraps.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/mannaz/internal/apperr"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS accounts (
	id            TEXT PRIMARY KEY,
	owner         TEXT NOT NULL,
	balance_cents INTEGER NOT NULL DEFAULT 0 CHECK (balance_cents >= 0),
	created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store wraps a sql.DB with account operations. Balances are in cents.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ledger: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ledger: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// CreateAccount inserts a new account with a zero balance.
func (s *Store) CreateAccount(owner string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.conn.Exec(
		`INSERT INTO accounts (id, owner, balance_cents, updated_at) VALUES (?, ?, 0, ?)`,
		id.String(), owner, time.Now().UTC(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("ledger: create account: %w", err)
	}
	return id, nil
}

// Balance returns the current balance of an account.
func (s *Store) Balance(id uuid.UUID) (int64, error) {
	var cents int64
	err := s.conn.QueryRow(`SELECT balance_cents FROM accounts WHERE id = ?`, id.String()).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("ledger: account %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("ledger: balance: %w", err)
	}
	return cents, nil
}

// Deposit adds amount to an account inside a transaction. Amount must be
// positive.
func (s *Store) Deposit(id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("ledger: deposit amount must be positive, got %d", amount)
	}
	return s.mutate(id, amount)
}

// Withdraw removes amount from an account inside a transaction. It fails
// with apperr.ErrInsufficientFunds when the balance would go negative, and
// leaves the balance untouched in that case.
func (s *Store) Withdraw(id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("ledger: withdraw amount must be positive, got %d", amount)
	}
	return s.mutate(id, -amount)
}

func (s *Store) mutate(id uuid.UUID, delta int64) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("ledger: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	var cents int64
	err = tx.QueryRow(`SELECT balance_cents FROM accounts WHERE id = ?`, id.String()).Scan(&cents)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("ledger: account %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("ledger: read balance: %w", err)
	}
	next := cents + delta
	if next < 0 {
		return fmt.Errorf("ledger: withdraw %d from %d: %w", -delta, cents, apperr.ErrInsufficientFunds)
	}
	if _, err := tx.Exec(
		`UPDATE accounts SET balance_cents = ?, updated_at = ? WHERE id = ?`,
		next, time.Now().UTC(), id.String(),
	); err != nil {
		return fmt.Errorf("ledger: update balance: %w", err)
	}
	return tx.Commit()
}

// Owner returns the owner of an account.
func (s *Store) Owner(id uuid.UUID) (string, error) {
	var owner string
	err := s.conn.QueryRow(`SELECT owner FROM accounts WHERE id = ?`, id.String()).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("ledger: account %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("ledger: owner: %w", err)
	}
	return owner, nil
}
