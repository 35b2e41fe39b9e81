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

func ptr[T any](v T) *T {
	return &v
}

func TestPublishingNewsStampsDateOnce(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewContentService(store)
	author := testutil.CreateUser(t, store, domain.RoleAdmin)

	news, err := svc.CreateNews(ctx, author.ID, &services.NewsInput{
		Title:   ptr("Dividend day"),
		Content: ptr("Payouts start Monday."),
	})
	require.NoError(t, err)
	assert.False(t, news.IsPublished)
	assert.Nil(t, news.PublishedDate)

	_, err = svc.GetNews(ctx, news.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	published, err := svc.UpdateNews(ctx, news.ID, &services.NewsInput{IsPublished: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedDate)
	first := *published.PublishedDate

	again, err := svc.UpdateNews(ctx, news.ID, &services.NewsInput{Title: ptr("Dividend day (updated)")})
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.PublishedDate))

	visible, err := svc.GetNews(ctx, news.ID, true)
	require.NoError(t, err)
	assert.Equal(t, "Dividend day (updated)", visible.Title)
}

func TestCreateNewsRequiresTitle(t *testing.T) {
	store := testutil.NewStore(t)
	svc := services.NewContentService(store)
	author := testutil.CreateUser(t, store, domain.RoleAdmin)

	_, err := svc.CreateNews(context.Background(), author.ID, &services.NewsInput{Content: ptr("body")})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestSettingsLookupByKey(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	svc := services.NewSettingService(store)

	created, err := svc.Create(ctx, &services.SettingInput{
		Key:         ptr("min_share_capital"),
		Value:       ptr("5000"),
		SettingType: ptr(string(domain.SettingTypeFinancial)),
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	found, err := svc.GetByKey(ctx, "min_share_capital")
	require.NoError(t, err)
	assert.Equal(t, "5000", found.Value)

	_, err = svc.Create(ctx, &services.SettingInput{Key: ptr("min_share_capital"), Value: ptr("1")})
	assert.ErrorIs(t, err, services.ErrSettingKeyTaken)

	_, err = svc.Create(ctx, &services.SettingInput{Key: ptr("x"), Value: ptr("1"), SettingType: ptr("cosmic")})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.GetByKey(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	accounts := services.NewAccountService(store, nil, 3)
	loans := services.NewLoanService(store, nil, 3)
	dashboard := services.NewDashboardService(store)

	member := testutil.CreateMember(t, store)
	account := testutil.CreateAccount(t, store, member, "0")
	_, err := accounts.Deposit(ctx, account.ID, amount("750"), services.Actor{})
	require.NoError(t, err)

	applyForLoan(t, loans, store, "1000", "12", 12)
	activeLoan(t, loans, store, "400.00")

	stats, err := dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalMembers)
	assert.Equal(t, "750.00", stats.TotalSavings.StringFixed(2))
	assert.EqualValues(t, 1, stats.PendingLoans)
	assert.EqualValues(t, 1, stats.ActiveLoans)
	assert.Equal(t, "400.00", stats.ActiveLoanBalance.StringFixed(2))
	assert.NotEmpty(t, stats.RecentTransactions)
}
