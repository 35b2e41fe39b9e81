package services_test

import (
	"context"
	"testing"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/core/services"
	"sacco-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueShares(t *testing.T, svc *services.ShareService, member *models.Member, qty int, active bool) {
	t.Helper()
	_, err := svc.Create(context.Background(), &services.CreateShareInput{
		MemberID: member.ID,
		Quantity: &qty,
		IsActive: &active,
	})
	require.NoError(t, err)
}

func declare(t *testing.T, svc *services.DividendService, perShare string) *models.Dividend {
	t.Helper()
	year := 2025
	rate := amount(perShare)
	dividend, err := svc.Create(context.Background(), &services.DividendInput{Year: &year, AmountPerShare: &rate})
	require.NoError(t, err)
	return dividend
}

func TestShareTotalValue(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewShareService(store)
	member := testutil.CreateMember(t, store)

	qty := 7
	value := amount("150")
	share, err := svc.Create(context.Background(), &services.CreateShareInput{
		MemberID:      member.ID,
		Quantity:      &qty,
		ValuePerShare: &value,
	})
	require.NoError(t, err)
	assert.Equal(t, "1050.00", share.TotalValue.StringFixed(2))
	assert.True(t, share.IsActive)

	qty = 3
	updated, err := svc.Update(context.Background(), share.ID, &services.UpdateShareInput{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "450.00", updated.TotalValue.StringFixed(2))
}

func TestCalculatePaymentsAggregatesActiveSharesPerMember(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	shares := services.NewShareService(store)
	dividends := services.NewDividendService(store, nil)

	alice := testutil.CreateMember(t, store)
	bob := testutil.CreateMember(t, store)
	carol := testutil.CreateMember(t, store)

	issueShares(t, shares, alice, 10, true)
	issueShares(t, shares, alice, 5, true)
	issueShares(t, shares, bob, 4, true)
	issueShares(t, shares, bob, 100, false)
	issueShares(t, shares, carol, 50, false)

	dividend := declare(t, dividends, "2.50")

	result, err := dividends.CalculatePayments(ctx, dividend.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Existing)
	assert.Equal(t, "47.50", result.Total.StringFixed(2))

	payments, err := store.DividendPayments.ListByDividend(ctx, dividend.ID)
	require.NoError(t, err)
	require.Len(t, payments, 2)

	byMember := map[uint]*models.DividendPayment{}
	for _, p := range payments {
		byMember[p.MemberID] = p
	}
	assert.Equal(t, 15, byMember[alice.ID].SharesOwned)
	assert.Equal(t, "37.50", byMember[alice.ID].Amount.StringFixed(2))
	assert.Equal(t, 4, byMember[bob.ID].SharesOwned)
	assert.Equal(t, "10.00", byMember[bob.ID].Amount.StringFixed(2))
	assert.NotContains(t, byMember, carol.ID)
}

func TestCalculatePaymentsKeepsDeclaredTotal(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	shares := services.NewShareService(store)
	dividends := services.NewDividendService(store, nil)

	issueShares(t, shares, testutil.CreateMember(t, store), 20, true)

	year := 2025
	rate := amount("2.50")
	declared := amount("99999.00")
	dividend, err := dividends.Create(ctx, &services.DividendInput{Year: &year, AmountPerShare: &rate, TotalAmount: &declared})
	require.NoError(t, err)

	result, err := dividends.CalculatePayments(ctx, dividend.ID)
	require.NoError(t, err)
	assert.Equal(t, "50.00", result.Total.StringFixed(2))

	stored, err := dividends.Get(ctx, dividend.ID)
	require.NoError(t, err)
	assert.Equal(t, "99999.00", stored.TotalAmount.StringFixed(2))
}

func TestCalculatePaymentsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	shares := services.NewShareService(store)
	dividends := services.NewDividendService(store, nil)

	member := testutil.CreateMember(t, store)
	issueShares(t, shares, member, 8, true)
	dividend := declare(t, dividends, "1.25")

	_, err := dividends.CalculatePayments(ctx, dividend.ID)
	require.NoError(t, err)

	// later purchases do not rewrite an existing payment
	issueShares(t, shares, member, 8, true)
	late := testutil.CreateMember(t, store)
	issueShares(t, shares, late, 2, true)

	again, err := dividends.CalculatePayments(ctx, dividend.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, again.Created)
	assert.Equal(t, 1, again.Existing)
	assert.Equal(t, "12.50", again.Total.StringFixed(2))

	payments, _, err := dividends.ListPayments(ctx, repositories.DividendPaymentFilter{DividendID: dividend.ID}, 0, 50)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestCalculatePaymentsUnknownDividend(t *testing.T) {
	store := testutil.NewStore(t)
	dividends := services.NewDividendService(store, nil)

	_, err := dividends.CalculatePayments(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkPaidFlagsDividendAndPayments(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	shares := services.NewShareService(store)
	dividends := services.NewDividendService(store, nil)

	issueShares(t, shares, testutil.CreateMember(t, store), 3, true)
	issueShares(t, shares, testutil.CreateMember(t, store), 6, true)
	dividend := declare(t, dividends, "1")

	_, err := dividends.CalculatePayments(ctx, dividend.ID)
	require.NoError(t, err)

	paidOn := time.Date(2025, 12, 20, 15, 30, 0, 0, time.UTC)
	paid, err := dividends.MarkPaid(ctx, dividend.ID, &paidOn)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2025-12-20", paid.PaymentDate.Format(time.DateOnly))

	isPaid := false
	unpaid, total, err := dividends.ListPayments(ctx, repositories.DividendPaymentFilter{DividendID: dividend.ID, IsPaid: &isPaid}, 0, 50)
	require.NoError(t, err)
	assert.Empty(t, unpaid)
	assert.Zero(t, total)
}

func TestCreateDividendRequiresYear(t *testing.T) {
	store := testutil.NewStore(t)
	dividends := services.NewDividendService(store, nil)

	rate := amount("1")
	_, err := dividends.Create(context.Background(), &services.DividendInput{AmountPerShare: &rate})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
