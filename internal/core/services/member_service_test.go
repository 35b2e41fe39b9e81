package services_test

import (
	"context"
	"testing"

	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMemberAssignsMembershipNumber(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewMemberService(store)
	user := testutil.CreateUser(t, store, domain.RoleMember)

	member, err := svc.Create(ctx, &services.CreateMemberInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Regexp(t, `^MEM[0-9A-F]{8}$`, member.MembershipNo)
	assert.Equal(t, string(domain.MemberStatusActive), member.Status)

	_, err = svc.Create(ctx, &services.CreateMemberInput{UserID: user.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicateEntry)

	_, err = svc.Create(ctx, &services.CreateMemberInput{UserID: 4242})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteMemberCascadesFinancialRecords(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	members := services.NewMemberService(store)
	accounts := services.NewAccountService(store, nil, 3)
	loans := services.NewLoanService(store, nil, 3)
	shares := services.NewShareService(store)

	member := testutil.CreateMember(t, store)
	account := testutil.CreateAccount(t, store, member, "0")
	_, err := accounts.Deposit(ctx, account.ID, amount("100"), services.Actor{})
	require.NoError(t, err)

	loan, err := loans.Create(ctx, &services.CreateLoanInput{
		MemberID:     member.ID,
		LoanType:     string(domain.LoanTypePersonal),
		Amount:       amount("200"),
		InterestRate: amount("5"),
		TermMonths:   3,
		Purpose:      "Rent",
	})
	require.NoError(t, err)
	issueShares(t, shares, member, 2, true)

	other := testutil.CreateMember(t, store)
	otherAccount := testutil.CreateAccount(t, store, other, "50.00")

	require.NoError(t, members.Delete(ctx, member.ID))

	_, err = members.Get(ctx, member.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = accounts.Get(ctx, account.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = loans.Get(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	txns, err := store.Transactions.ListByMember(ctx, member.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, txns)

	_, err = accounts.Get(ctx, otherAccount.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, members.Delete(ctx, member.ID), domain.ErrNotFound)
}

func TestMemberTransactionsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	members := services.NewMemberService(store)
	accounts := services.NewAccountService(store, nil, 3)

	member := testutil.CreateMember(t, store)
	account := testutil.CreateAccount(t, store, member, "0")
	for _, a := range []string{"10", "20", "30"} {
		_, err := accounts.Deposit(ctx, account.ID, amount(a), services.Actor{})
		require.NoError(t, err)
	}

	txns, err := members.Transactions(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "60.00", txns[0].BalanceAfter.StringFixed(2))
	assert.Equal(t, "10.00", txns[2].BalanceAfter.StringFixed(2))
}
