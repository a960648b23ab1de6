package credential

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"academy/internal/sentinel"
	id "academy/pkg/domain"
)

func TestCreateMint(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemory()

	t.Run("records the authority", func(t *testing.T) {
		authority := id.AccountID(uuid.New())
		mint, err := svc.CreateMint(ctx, authority)
		require.NoError(t, err)
		assert.False(t, mint.IsNil())

		got, err := svc.MintAuthority(ctx, mint)
		require.NoError(t, err)
		assert.Equal(t, authority, got)
	})

	t.Run("rejects nil authority", func(t *testing.T) {
		_, err := svc.CreateMint(ctx, id.AccountID{})
		require.ErrorIs(t, err, sentinel.ErrInvalidInput)
	})

	t.Run("unknown mint has no authority", func(t *testing.T) {
		_, err := svc.MintAuthority(ctx, id.MintID(uuid.New()))
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestMintOne(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemory()
	authority := id.AccountID(uuid.New())
	holder := id.AccountID(uuid.New())
	mint, err := svc.CreateMint(ctx, authority)
	require.NoError(t, err)

	t.Run("issues one unit per call", func(t *testing.T) {
		require.NoError(t, svc.MintOne(ctx, mint, authority, holder))

		holding, err := svc.Holding(ctx, mint, holder)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), holding)

		require.NoError(t, svc.MintOne(ctx, mint, authority, holder))
		holding, err = svc.Holding(ctx, mint, holder)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), holding)
	})

	t.Run("rejects a non-authority issuer", func(t *testing.T) {
		err := svc.MintOne(ctx, mint, id.AccountID(uuid.New()), holder)
		require.ErrorIs(t, err, sentinel.ErrInvalidState)
	})

	t.Run("rejects an unknown mint", func(t *testing.T) {
		err := svc.MintOne(ctx, id.MintID(uuid.New()), authority, holder)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestHolding(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemory()
	authority := id.AccountID(uuid.New())
	mint, err := svc.CreateMint(ctx, authority)
	require.NoError(t, err)

	// Holdings are per (mint, holder); an unrelated holder owns nothing.
	holding, err := svc.Holding(ctx, mint, id.AccountID(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), holding)
}
