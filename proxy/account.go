// Package proxy controls access to a bank account without changing its
// interface.
//
// LedgerAccount is the real subject, persisted through internal/ledger.
// Guarded adds an access check and a withdrawal cap in front of it, and
// Cached short-circuits repeated balance reads. All three satisfy Account,
// so proxies stack in any order.
package proxy

import (
	"github.com/google/uuid"

	"github.com/starford/mannaz/internal/ledger"
)

// Account is the subject interface shared by the real account and its
// proxies. Amounts are in cents.
type Account interface {
	Deposit(amount int64) error
	Withdraw(amount int64) error
	Balance() (int64, error)
}

// LedgerAccount is the real subject: one account row in the SQLite ledger.
type LedgerAccount struct {
	store *ledger.Store
	id    uuid.UUID
}

// NewLedgerAccount binds an Account view to an existing ledger row.
func NewLedgerAccount(store *ledger.Store, id uuid.UUID) *LedgerAccount {
	return &LedgerAccount{store: store, id: id}
}

// ID returns the underlying account id.
func (a *LedgerAccount) ID() uuid.UUID { return a.id }

func (a *LedgerAccount) Deposit(amount int64) error  { return a.store.Deposit(a.id, amount) }
func (a *LedgerAccount) Withdraw(amount int64) error { return a.store.Withdraw(a.id, amount) }
func (a *LedgerAccount) Balance() (int64, error)     { return a.store.Balance(a.id) }
