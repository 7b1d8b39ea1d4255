package proxy

import "sync"

// Cached is a caching proxy: Balance is served from memory after the first
// read, and any mutation invalidates the cache. Safe for concurrent use.
type Cached struct {
	next Account

	mu      sync.Mutex
	balance int64
	valid   bool
}

// NewCached wraps next with a balance cache.
func NewCached(next Account) *Cached {
	return &Cached{next: next}
}

func (c *Cached) Deposit(amount int64) error {
	err := c.next.Deposit(amount)
	if err == nil {
		c.invalidate()
	}
	return err
}

func (c *Cached) Withdraw(amount int64) error {
	err := c.next.Withdraw(amount)
	if err == nil {
		c.invalidate()
	}
	return err
}

func (c *Cached) Balance() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.balance, nil
	}
	bal, err := c.next.Balance()
	if err != nil {
		return 0, err
	}
	c.balance, c.valid = bal, true
	return bal, nil
}

func (c *Cached) invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
