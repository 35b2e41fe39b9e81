package repositories_test

import (
	"context"
	"errors"
	"testing"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountUpdateDetectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "100.00")

	first, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	second, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)

	first.Balance = decimal.RequireFromString("150.00")
	require.NoError(t, store.Accounts.Update(ctx, first))
	assert.Equal(t, second.Version+1, first.Version)

	second.Balance = decimal.RequireFromString("90.00")
	assert.ErrorIs(t, store.Accounts.Update(ctx, second), repositories.ErrStaleVersion)

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.00", stored.Balance.StringFixed(2))
}

func TestAtomicRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "100.00")
	boom := errors.New("boom")

	err := store.Atomic(ctx, func(tx *repositories.Store) error {
		a, err := tx.Accounts.GetByID(ctx, account.ID)
		if err != nil {
			return err
		}
		a.Balance = decimal.Zero
		if err := tx.Accounts.Update(ctx, a); err != nil {
			return err
		}
		if err := tx.Transactions.Create(ctx, &models.Transaction{
			MemberID:         a.MemberID,
			TransactionType:  "withdrawal",
			Amount:           decimal.RequireFromString("100.00"),
			SavingsAccountID: &a.ID,
			BalanceAfter:     decimal.Zero,
		}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", stored.Balance.StringFixed(2))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDividendPaymentGetOrCreate(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	member := testutil.CreateMember(t, store)

	dividend := &models.Dividend{Year: 2025, AmountPerShare: decimal.NewFromInt(2), TotalAmount: decimal.Zero}
	require.NoError(t, store.Dividends.Create(ctx, dividend))

	payment, created, err := store.DividendPayments.GetOrCreate(ctx, &models.DividendPayment{
		DividendID: dividend.ID, MemberID: member.ID, SharesOwned: 3, Amount: decimal.NewFromInt(6),
	})
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := store.DividendPayments.GetOrCreate(ctx, &models.DividendPayment{
		DividendID: dividend.ID, MemberID: member.ID, SharesOwned: 10, Amount: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, payment.ID, again.ID)
	assert.Equal(t, 3, again.SharesOwned)
}
