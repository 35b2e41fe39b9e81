package services_test

import (
	"context"
	"testing"

	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDepositCreditsBalanceAndRecordsEntry(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	member := testutil.CreateMember(t, store)
	account := testutil.CreateAccount(t, store, member, "1000.00")
	clerk := testutil.CreateUser(t, store, domain.RoleFinanceOfficer)

	change, err := svc.Deposit(ctx, account.ID, amount("500"), services.Actor{UserID: clerk.ID, IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "1500.00", change.Account.Balance.StringFixed(2))
	assert.Equal(t, string(domain.TxTypeDeposit), change.Transaction.TransactionType)
	assert.Equal(t, "500.00", change.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "1500.00", change.Transaction.BalanceAfter.StringFixed(2))
	assert.Equal(t, member.ID, change.Transaction.MemberID)
	assert.NotEmpty(t, change.Transaction.TransactionID)
	require.NotNil(t, change.Transaction.PerformedBy)
	assert.Equal(t, clerk.ID, *change.Transaction.PerformedBy)

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "1500.00", stored.Balance.StringFixed(2))
}

func TestWithdrawRejectsOverdraftAndLeavesBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "1000.00")

	_, err := svc.Withdraw(ctx, account.ID, amount("1500"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", stored.Balance.StringFixed(2))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWithdrawDebitsBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "1000.00")

	change, err := svc.Withdraw(ctx, account.ID, amount("1000"), services.Actor{})
	require.NoError(t, err)
	assert.True(t, change.Account.Balance.IsZero())
	assert.Equal(t, string(domain.TxTypeWithdrawal), change.Transaction.TransactionType)
	assert.True(t, change.Transaction.BalanceAfter.IsZero())
}

func TestPostingRejectsInvalidAmounts(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "100.00")

	for _, a := range []string{"0", "-10", "0.004", "10.005"} {
		_, err := svc.Deposit(ctx, account.ID, amount(a), services.Actor{})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, a)

		_, err = svc.Withdraw(ctx, account.ID, amount(a), services.Actor{})
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, a)
	}

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", stored.Balance.StringFixed(2))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDepositRetriesAfterVersionConflict(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	svc := services.NewAccountService(store, nil, 3)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "1000.00")
	testutil.ConflictOnUpdate(t, db, "savings_accounts", 1)

	change, err := svc.Deposit(ctx, account.ID, amount("250"), services.Actor{})
	require.NoError(t, err)
	assert.Equal(t, "1250.00", change.Account.Balance.StringFixed(2))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDepositGivesUpWhenRetriesExhausted(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)
	svc := services.NewAccountService(store, nil, 1)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "1000.00")
	testutil.ConflictOnUpdate(t, db, "savings_accounts", 1)

	_, err := svc.Deposit(ctx, account.ID, amount("250"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	stored, err := store.Accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", stored.Balance.StringFixed(2))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDepositUnknownAccount(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	_, err := svc.Deposit(context.Background(), 9999, amount("10"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateAccountStartsAtZero(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)
	member := testutil.CreateMember(t, store)

	account, err := svc.Create(ctx, &services.CreateAccountInput{MemberID: member.ID})
	require.NoError(t, err)

	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, string(domain.AccountTypeRegular), account.AccountType)
	assert.Regexp(t, `^SAV[0-9A-F]{12}$`, account.AccountNumber)
	assert.True(t, account.IsActive)

	_, err = svc.Create(ctx, &services.CreateAccountInput{MemberID: member.ID, AccountType: "offshore"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestDeleteAccountRemovesLedgerEntries(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewAccountService(store, nil, 3)

	account := testutil.CreateAccount(t, store, testutil.CreateMember(t, store), "0")
	_, err := svc.Deposit(ctx, account.ID, amount("25"), services.Actor{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, account.ID))

	entries, err := store.Transactions.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, svc.Delete(ctx, account.ID), domain.ErrNotFound)
}
