package services_test

import (
	"context"
	"testing"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/pkg/civil"
	"sacco-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyForLoan(t *testing.T, svc *services.LoanService, store *repositories.Store, amt, rate string, term int) *models.Loan {
	t.Helper()
	member := testutil.CreateMember(t, store)
	loan, err := svc.Create(context.Background(), &services.CreateLoanInput{
		MemberID:     member.ID,
		LoanType:     string(domain.LoanTypePersonal),
		Amount:       amount(amt),
		InterestRate: amount(rate),
		TermMonths:   term,
		Purpose:      "School fees",
	})
	require.NoError(t, err)
	return loan
}

func TestFlatInterestSchedule(t *testing.T) {
	total, monthly := services.FlatInterestSchedule(amount("1000"), amount("12"), 12)
	assert.Equal(t, "1120.00", total.StringFixed(2))
	assert.Equal(t, "93.33", monthly.StringFixed(2))

	total, monthly = services.FlatInterestSchedule(amount("5000"), amount("10"), 6)
	assert.Equal(t, "5250.00", total.StringFixed(2))
	assert.Equal(t, "875.00", monthly.StringFixed(2))
}

func TestCreateLoanIsPendingWithSchedule(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)

	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	assert.Equal(t, string(domain.LoanStatusPending), loan.Status)
	assert.Equal(t, "1120.00", loan.TotalAmount.StringFixed(2))
	assert.Equal(t, "1120.00", loan.RemainingBalance.StringFixed(2))
	assert.Regexp(t, `^LN[0-9A-F]+$`, loan.LoanNumber)
	require.NotNil(t, loan.DueDate)
	assert.Equal(t, loan.ApplicationDate.AddDate(0, 12, 0).Format(time.DateOnly), loan.DueDate.Format(time.DateOnly))
}

func TestCreateLoanValidatesTerms(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	member := testutil.CreateMember(t, store)

	cases := map[string]services.CreateLoanInput{
		"bad type":    {MemberID: member.ID, LoanType: "yacht", Amount: amount("10"), TermMonths: 1, Purpose: "x"},
		"zero amount": {MemberID: member.ID, LoanType: "personal", Amount: amount("0"), TermMonths: 1, Purpose: "x"},
		"no term":     {MemberID: member.ID, LoanType: "personal", Amount: amount("10"), TermMonths: 0, Purpose: "x"},
		"no purpose":  {MemberID: member.ID, LoanType: "personal", Amount: amount("10"), TermMonths: 1},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			input := input
			_, err := svc.Create(context.Background(), &input)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestApproveOnlyFromPending(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	approved, err := svc.Approve(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.LoanStatusApproved), approved.Status)
	assert.NotNil(t, approved.ApprovalDate)

	_, err = svc.Approve(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)

	_, err = svc.Reject(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
}

func TestRejectPendingLoan(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	rejected, err := svc.Reject(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.LoanStatusRejected), rejected.Status)

	_, err = svc.Disburse(ctx, loan.ID, services.Actor{})
	assert.ErrorIs(t, err, domain.ErrLoanNotApproved)
}

func TestDisburseRequiresApproval(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	_, err := svc.Disburse(context.Background(), loan.ID, services.Actor{})
	assert.ErrorIs(t, err, domain.ErrLoanNotApproved)
}

func TestDisburseActivatesAndRecordsOutstandingBalance(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	_, err := svc.Approve(ctx, loan.ID)
	require.NoError(t, err)

	result, err := svc.Disburse(ctx, loan.ID, services.Actor{IPAddress: "127.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, string(domain.LoanStatusActive), result.Loan.Status)
	assert.NotNil(t, result.Loan.DisbursementDate)
	assert.Equal(t, string(domain.TxTypeLoanDisbursement), result.Transaction.TransactionType)
	assert.Equal(t, "1000.00", result.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "1120.00", result.Transaction.BalanceAfter.StringFixed(2))
	require.NotNil(t, result.Transaction.LoanID)
	assert.Equal(t, loan.ID, *result.Transaction.LoanID)

	_, err = svc.Disburse(ctx, loan.ID, services.Actor{})
	assert.ErrorIs(t, err, domain.ErrLoanNotApproved)
}

func activeLoan(t *testing.T, svc *services.LoanService, store *repositories.Store, total string) *models.Loan {
	t.Helper()
	ctx := context.Background()
	member := testutil.CreateMember(t, store)
	override := amount(total)
	loan, err := svc.Create(ctx, &services.CreateLoanInput{
		MemberID:     member.ID,
		LoanType:     string(domain.LoanTypeEmergency),
		Amount:       override,
		InterestRate: amount("0"),
		TermMonths:   6,
		TotalAmount:  &override,
		Purpose:      "Medical bill",
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, loan.ID)
	require.NoError(t, err)
	_, err = svc.Disburse(ctx, loan.ID, services.Actor{})
	require.NoError(t, err)
	return loan
}

func TestPaymentInFullCompletesLoan(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := activeLoan(t, svc, store, "500.00")

	result, err := svc.MakePayment(ctx, loan.ID, amount("500"), services.Actor{})
	require.NoError(t, err)

	assert.Equal(t, string(domain.LoanStatusCompleted), result.Loan.Status)
	assert.True(t, result.Loan.RemainingBalance.IsZero())
	assert.Equal(t, string(domain.TxTypeLoanPayment), result.Transaction.TransactionType)
	assert.True(t, result.Transaction.BalanceAfter.IsZero())

	_, err = svc.MakePayment(ctx, loan.ID, amount("1"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrLoanNotActive)
}

func TestPartialPaymentKeepsLoanActive(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := activeLoan(t, svc, store, "500.00")

	result, err := svc.MakePayment(ctx, loan.ID, amount("120.50"), services.Actor{})
	require.NoError(t, err)
	assert.Equal(t, string(domain.LoanStatusActive), result.Loan.Status)
	assert.Equal(t, "379.50", result.Loan.RemainingBalance.StringFixed(2))
	assert.Equal(t, "379.50", result.Transaction.BalanceAfter.StringFixed(2))

	entries, err := store.Transactions.ListByLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestOverpaymentRejected(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := activeLoan(t, svc, store, "500.00")

	_, err := svc.MakePayment(ctx, loan.ID, amount("500.01"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	stored, err := svc.Get(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "500.00", stored.RemainingBalance.StringFixed(2))
	assert.Equal(t, string(domain.LoanStatusActive), stored.Status)
}

func TestPaymentRejectsFractionalCents(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := activeLoan(t, svc, store, "500.00")

	_, err := svc.MakePayment(ctx, loan.ID, amount("0.004"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	entries, err := store.Transactions.ListByLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPaymentVersionConflict(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	store := repositories.NewStore(db)

	retrying := services.NewLoanService(store, nil, 3)
	loan := activeLoan(t, retrying, store, "500.00")

	testutil.ConflictOnUpdate(t, db, "loans", 1)
	result, err := retrying.MakePayment(ctx, loan.ID, amount("100"), services.Actor{})
	require.NoError(t, err)
	assert.Equal(t, "400.00", result.Loan.RemainingBalance.StringFixed(2))

	single := services.NewLoanService(store, nil, 1)
	testutil.ConflictOnUpdate(t, db, "loans", 1)
	_, err = single.MakePayment(ctx, loan.ID, amount("100"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)

	stored, err := single.Get(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, "400.00", stored.RemainingBalance.StringFixed(2))
}

func TestPaymentOnPendingLoan(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	_, err := svc.MakePayment(context.Background(), loan.ID, amount("10"), services.Actor{})
	assert.ErrorIs(t, err, domain.ErrLoanNotActive)
}

func TestUpdateOnlyWhilePending(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)
	loan := applyForLoan(t, svc, store, "1000", "12", 12)

	term := 6
	updated, err := svc.Update(ctx, loan.ID, &services.UpdateLoanInput{TermMonths: &term})
	require.NoError(t, err)
	assert.Equal(t, "1060.00", updated.TotalAmount.StringFixed(2))
	assert.Equal(t, "1060.00", updated.RemainingBalance.StringFixed(2))

	_, err = svc.Approve(ctx, loan.ID)
	require.NoError(t, err)

	_, err = svc.Update(ctx, loan.ID, &services.UpdateLoanInput{TermMonths: &term})
	assert.ErrorIs(t, err, domain.ErrLoanNotPending)
}

func TestSweepOverdueDefaultsPastDueLoans(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewLoanService(store, nil, 3)

	applied := civil.NewDate(time.Now().AddDate(-2, 0, 0))
	member := testutil.CreateMember(t, store)
	late, err := svc.Create(ctx, &services.CreateLoanInput{
		MemberID:        member.ID,
		LoanType:        string(domain.LoanTypeBusiness),
		Amount:          amount("2000"),
		InterestRate:    amount("10"),
		TermMonths:      12,
		ApplicationDate: &applied,
		Purpose:         "Stock",
	})
	require.NoError(t, err)
	_, err = svc.Approve(ctx, late.ID)
	require.NoError(t, err)
	_, err = svc.Disburse(ctx, late.ID, services.Actor{})
	require.NoError(t, err)

	current := activeLoan(t, svc, store, "300.00")

	n, err := svc.SweepOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := svc.Get(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.LoanStatusDefaulted), stored.Status)

	stored, err = svc.Get(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.LoanStatusActive), stored.Status)

	n, err = svc.SweepOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}
