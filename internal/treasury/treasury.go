// Package treasury is the in-process Value Transfer Service. The enrollment
// engine consumes it through a narrow interface; a production deployment
// would point that interface at a real payment rail instead.
package treasury

import (
	"context"
	"fmt"
	"sync"

	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

// InMemory holds account balances and moves value atomically. A transfer
// either fully debits and credits under one lock or leaves both accounts
// untouched; no partial effect is observable.
type InMemory struct {
	mu       sync.Mutex
	balances map[id.AccountID]uint64
}

// NewInMemory creates an empty treasury.
func NewInMemory() *InMemory {
	return &InMemory{balances: make(map[id.AccountID]uint64)}
}

// Credit adds funds to an account. Used for seeding and by tests.
func (t *InMemory) Credit(_ context.Context, account id.AccountID, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[account] += amount
	return nil
}

// Balance reports the available balance of an account. Unknown accounts have
// a zero balance rather than erroring, matching how a value ledger reports
// never-funded accounts.
func (t *InMemory) Balance(_ context.Context, account id.AccountID) (uint64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.balances[account], nil
}

// Transfer moves amount from one account to another, atomically.
func (t *InMemory) Transfer(_ context.Context, from, to id.AccountID, amount uint64) error {
	if from == to {
		return fmt.Errorf("transfer to self: %w", sentinel.ErrInvalidInput)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.balances[from] < amount {
		return fmt.Errorf("transfer %d from %s: %w", amount, from, sentinel.ErrInsufficientFunds)
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}
