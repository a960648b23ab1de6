// Package credential is the in-process Credential Issuance Service. It mints
// non-fungible credential tokens to holder accounts under an issuing
// authority; the enrollment engine consumes it through a narrow interface.
package credential

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

type holdingKey struct {
	mint   id.MintID
	holder id.AccountID
}

// InMemory tracks mints, their authorities, and per-holder holdings.
type InMemory struct {
	mu          sync.Mutex
	authorities map[id.MintID]id.AccountID
	holdings    map[holdingKey]uint64
}

// NewInMemory creates an empty credential service.
func NewInMemory() *InMemory {
	return &InMemory{
		authorities: make(map[id.MintID]id.AccountID),
		holdings:    make(map[holdingKey]uint64),
	}
}

// CreateMint registers a new mint controlled by the given authority.
func (c *InMemory) CreateMint(_ context.Context, authority id.AccountID) (id.MintID, error) {
	if authority.IsNil() {
		return id.MintID{}, fmt.Errorf("mint authority required: %w", sentinel.ErrInvalidInput)
	}

	mint := id.MintID(uuid.New())
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authorities[mint] = authority
	return mint, nil
}

// MintAuthority reports the issuing authority of a mint.
func (c *InMemory) MintAuthority(_ context.Context, mint id.MintID) (id.AccountID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	authority, ok := c.authorities[mint]
	if !ok {
		return id.AccountID{}, fmt.Errorf("mint %s: %w", mint, sentinel.ErrNotFound)
	}
	return authority, nil
}

// MintOne issues exactly one unit of the mint's token to the holder. The
// issuance must be authorized by the mint's controlling authority.
func (c *InMemory) MintOne(_ context.Context, mint id.MintID, authority id.AccountID, holder id.AccountID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	actual, ok := c.authorities[mint]
	if !ok {
		return fmt.Errorf("mint %s: %w", mint, sentinel.ErrNotFound)
	}
	if actual != authority {
		return fmt.Errorf("mint %s authority mismatch: %w", mint, sentinel.ErrInvalidState)
	}

	c.holdings[holdingKey{mint: mint, holder: holder}]++
	return nil
}

// Holding reports how many units of a mint's token the holder owns.
func (c *InMemory) Holding(_ context.Context, mint id.MintID, holder id.AccountID) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holdings[holdingKey{mint: mint, holder: holder}], nil
}
