package proxy

import (
	"crypto/subtle"
	"fmt"

	"github.com/starford/mannaz/internal/apperr"
)

// Guarded is a protection proxy: callers must present the right token to
// obtain a usable Account view, and withdrawals are capped per call. The
// real subject is never touched on a failed check.
type Guarded struct {
	next        Account
	token       string
	withdrawCap int64
}

// NewGuarded wraps next. token is the credential callers must present;
// withdrawCap caps single withdrawals (0 means uncapped).
func NewGuarded(next Account, token string, withdrawCap int64) *Guarded {
	return &Guarded{next: next, token: token, withdrawCap: withdrawCap}
}

// Authorized returns an Account view for the presented token. The check
// happens per call on the returned view, so a view created before a token
// leak stays worthless without the right credential.
func (g *Guarded) Authorized(token string) Account {
	return &session{g: g, token: token}
}

type session struct {
	g     *Guarded
	token string
}

func (s *session) check() error {
	if subtle.ConstantTimeCompare([]byte(s.token), []byte(s.g.token)) != 1 {
		return fmt.Errorf("proxy: %w", apperr.ErrAccessDenied)
	}
	return nil
}

func (s *session) Deposit(amount int64) error {
	if err := s.check(); err != nil {
		return err
	}
	return s.g.next.Deposit(amount)
}

func (s *session) Withdraw(amount int64) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.g.withdrawCap > 0 && amount > s.g.withdrawCap {
		return fmt.Errorf("proxy: withdrawal %d exceeds cap %d: %w", amount, s.g.withdrawCap, apperr.ErrAccessDenied)
	}
	return s.g.next.Withdraw(amount)
}

func (s *session) Balance() (int64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.g.next.Balance()
}
