package services

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"

	"github.com/shopspring/decimal"
)

// dashboardRecentLimit caps the recent transaction list
const dashboardRecentLimit = 10

// DashboardService aggregates headline figures for administrators
type DashboardService struct {
	store *repositories.Store
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *repositories.Store) *DashboardService {
	return &DashboardService{store: store}
}

// DashboardStats represents admin dashboard data
type DashboardStats struct {
	// Members
	TotalMembers  int64 `json:"total_members"`
	ActiveMembers int64 `json:"active_members"`

	// Savings and loans
	TotalSavings       decimal.Decimal `json:"total_savings"`
	ActiveLoanBalance  decimal.Decimal `json:"active_loan_balance"`
	PendingLoans       int64           `json:"pending_loans"`
	ActiveLoans        int64           `json:"active_loans"`
	DefaultedLoans     int64           `json:"defaulted_loans"`
	TransactionsToday  int64           `json:"transactions_today"`
	ActiveShares       int64           `json:"active_shares"`
	DividendsPaidTotal decimal.Decimal `json:"dividends_paid_total"`

	// Feedback
	NewFeedback int64 `json:"new_feedback"`

	// Recent Activity
	RecentTransactions []*models.TransactionResponse `json:"recent_transactions"`
}

// Stats collects dashboard figures; the first failing query aborts the call
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	data := &DashboardStats{}
	var err error

	if data.TotalMembers, err = s.store.Members.Count(ctx); err != nil {
		return nil, err
	}
	if data.ActiveMembers, err = s.store.Members.CountByStatus(ctx, string(domain.MemberStatusActive)); err != nil {
		return nil, err
	}
	if data.TotalSavings, err = s.store.Accounts.SumActiveBalances(ctx); err != nil {
		return nil, err
	}
	if data.ActiveLoanBalance, err = s.store.Loans.SumRemainingByStatus(ctx, string(domain.LoanStatusActive)); err != nil {
		return nil, err
	}
	if data.PendingLoans, err = s.store.Loans.CountByStatus(ctx, string(domain.LoanStatusPending)); err != nil {
		return nil, err
	}
	if data.ActiveLoans, err = s.store.Loans.CountByStatus(ctx, string(domain.LoanStatusActive)); err != nil {
		return nil, err
	}
	if data.DefaultedLoans, err = s.store.Loans.CountByStatus(ctx, string(domain.LoanStatusDefaulted)); err != nil {
		return nil, err
	}
	if data.TransactionsToday, err = s.store.Transactions.CountSince(ctx, today()); err != nil {
		return nil, err
	}
	if data.ActiveShares, err = s.store.Shares.SumActiveQuantity(ctx); err != nil {
		return nil, err
	}
	if data.DividendsPaidTotal, err = s.store.Dividends.SumPaidTotals(ctx); err != nil {
		return nil, err
	}
	if data.NewFeedback, err = s.store.Feedback.CountByStatus(ctx, string(domain.FeedbackStatusNew)); err != nil {
		return nil, err
	}

	recent, _, err := s.store.Transactions.List(ctx, repositories.TransactionFilter{}, 0, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	data.RecentTransactions = make([]*models.TransactionResponse, len(recent))
	for i, tx := range recent {
		data.RecentTransactions[i] = tx.ToResponse()
	}

	data.TotalSavings = money(data.TotalSavings)
	data.ActiveLoanBalance = money(data.ActiveLoanBalance)
	data.DividendsPaidTotal = money(data.DividendsPaidTotal)
	return data, nil
}
