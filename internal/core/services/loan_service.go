package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/civil"
	"sacco-admin/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// Loan service errors
var (
	ErrLoanNotFound = &domain.NotFoundError{Resource: "loan"}
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// LoanService drives the loan lifecycle: application, approval, disbursement, repayment
type LoanService struct {
	store      *repositories.Store
	metrics    *metrics.Metrics
	maxRetries int
}

// NewLoanService creates a new loan service
func NewLoanService(store *repositories.Store, m *metrics.Metrics, maxRetries int) *LoanService {
	return &LoanService{store: store, metrics: m, maxRetries: maxRetries}
}

// CreateLoanInput represents a loan application.
// TotalAmount and MonthlyPayment are computed with flat interest when omitted.
type CreateLoanInput struct {
	MemberID        uint             `json:"member"`
	LoanType        string           `json:"loan_type"`
	Amount          decimal.Decimal  `json:"amount"`
	InterestRate    decimal.Decimal  `json:"interest_rate"`
	TermMonths      int              `json:"term_months"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	MonthlyPayment  *decimal.Decimal `json:"monthly_payment"`
	ApplicationDate *civil.Date      `json:"application_date"`
	Purpose         string           `json:"purpose"`
	GuarantorName   *string          `json:"guarantor_name"`
	GuarantorPhone  *string          `json:"guarantor_phone"`
}

// UpdateLoanInput represents edits to a pending application
type UpdateLoanInput struct {
	LoanType       *string          `json:"loan_type"`
	Amount         *decimal.Decimal `json:"amount"`
	InterestRate   *decimal.Decimal `json:"interest_rate"`
	TermMonths     *int             `json:"term_months"`
	Purpose        *string          `json:"purpose"`
	GuarantorName  *string          `json:"guarantor_name"`
	GuarantorPhone *string          `json:"guarantor_phone"`
}

// LoanPayment is the outcome of a repayment
type LoanPayment struct {
	Loan        *models.Loan
	Transaction *models.Transaction
}

// FlatInterestSchedule returns (total, monthly) for amount at annual rate percent over term months:
// total = amount * (1 + rate/100 * term/12), monthly = total / term, both rounded to cents.
func FlatInterestSchedule(amount, rate decimal.Decimal, term int) (decimal.Decimal, decimal.Decimal) {
	months := decimal.NewFromInt(int64(term))
	interest := amount.Mul(rate).Div(hundred).Mul(months).Div(twelve)
	total := money(amount.Add(interest))
	monthly := money(total.Div(months))
	return total, monthly
}

// Create records a pending loan application
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.Loan, error) {
	if _, err := s.store.Members.GetByID(ctx, input.MemberID); err != nil {
		return nil, notFound(err, ErrMemberNotFound)
	}
	if err := validateLoanTerms(input.LoanType, input.Amount, input.InterestRate, input.TermMonths, input.Purpose); err != nil {
		return nil, err
	}

	total, monthly := FlatInterestSchedule(input.Amount, input.InterestRate, input.TermMonths)
	if input.TotalAmount != nil {
		total = money(*input.TotalAmount)
	}
	if input.MonthlyPayment != nil {
		monthly = money(*input.MonthlyPayment)
	}

	applied := today()
	if input.ApplicationDate != nil {
		applied = input.ApplicationDate.Time
	}
	due := applied.AddDate(0, input.TermMonths, 0)

	loan := &models.Loan{
		MemberID:         input.MemberID,
		LoanType:         input.LoanType,
		Amount:           money(input.Amount),
		InterestRate:     input.InterestRate,
		TermMonths:       input.TermMonths,
		MonthlyPayment:   monthly,
		TotalAmount:      total,
		RemainingBalance: total,
		Status:           string(domain.LoanStatusPending),
		ApplicationDate:  applied,
		DueDate:          &due,
		Purpose:          input.Purpose,
		GuarantorName:    input.GuarantorName,
		GuarantorPhone:   input.GuarantorPhone,
	}
	if err := s.store.Loans.Create(ctx, loan); err != nil {
		return nil, err
	}

	slog.Info("Loan application received",
		"loan", loan.LoanNumber,
		"member_id", loan.MemberID,
		"amount", loan.Amount.StringFixed(2),
		"total", loan.TotalAmount.StringFixed(2),
	)
	return s.Get(ctx, loan.ID)
}

func validateLoanTerms(loanType string, amount, rate decimal.Decimal, term int, purpose string) error {
	if !domain.LoanType(loanType).IsValid() {
		return domain.Invalid("loan_type", "must be personal, business, emergency or education")
	}
	if !amount.IsPositive() {
		return domain.Invalid("amount", "must be greater than zero")
	}
	if rate.IsNegative() {
		return domain.Invalid("interest_rate", "must not be negative")
	}
	if term < 1 {
		return domain.Invalid("term_months", "must be at least 1")
	}
	if purpose == "" {
		return domain.Invalid("purpose", "is required")
	}
	return nil
}

func (s *LoanService) Get(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.store.Loans.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrLoanNotFound)
	}
	return loan, nil
}

func (s *LoanService) List(ctx context.Context, filter repositories.LoanFilter, offset, limit int) ([]*models.Loan, int64, error) {
	return s.store.Loans.List(ctx, filter, offset, limit)
}

// Update edits a pending application and recomputes its schedule
func (s *LoanService) Update(ctx context.Context, id uint, input *UpdateLoanInput) (*models.Loan, error) {
	var loan *models.Loan
	err := withRetry(ctx, s.maxRetries, s.metrics, "loan", func() error {
		var err error
		loan, err = s.store.Loans.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrLoanNotFound)
		}
		if domain.LoanStatus(loan.Status) != domain.LoanStatusPending {
			return domain.ErrLoanNotPending
		}

		if input.LoanType != nil {
			loan.LoanType = *input.LoanType
		}
		if input.Amount != nil {
			loan.Amount = money(*input.Amount)
		}
		if input.InterestRate != nil {
			loan.InterestRate = *input.InterestRate
		}
		if input.TermMonths != nil {
			loan.TermMonths = *input.TermMonths
		}
		if input.Purpose != nil {
			loan.Purpose = *input.Purpose
		}
		if input.GuarantorName != nil {
			loan.GuarantorName = input.GuarantorName
		}
		if input.GuarantorPhone != nil {
			loan.GuarantorPhone = input.GuarantorPhone
		}
		if err := validateLoanTerms(loan.LoanType, loan.Amount, loan.InterestRate, loan.TermMonths, loan.Purpose); err != nil {
			return err
		}

		loan.TotalAmount, loan.MonthlyPayment = FlatInterestSchedule(loan.Amount, loan.InterestRate, loan.TermMonths)
		loan.RemainingBalance = loan.TotalAmount
		due := loan.ApplicationDate.AddDate(0, loan.TermMonths, 0)
		loan.DueDate = &due

		return s.store.Loans.Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

// Delete removes a loan and its ledger entries
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		return tx.Loans.Delete(ctx, id)
	})
	return notFound(err, ErrLoanNotFound)
}

// Approve moves a pending loan to approved and stamps the approval date
func (s *LoanService) Approve(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.transition(ctx, id, domain.LoanStatusApproved, domain.ErrLoanNotPending, func(loan *models.Loan) {
		d := today()
		loan.ApprovalDate = &d
	})
	s.metrics.LedgerOp("approve", outcome(err))
	return loan, err
}

// Reject closes a pending application
func (s *LoanService) Reject(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.transition(ctx, id, domain.LoanStatusRejected, domain.ErrLoanNotPending, nil)
	s.metrics.LedgerOp("reject", outcome(err))
	return loan, err
}

// transition applies a status change guarded by the lifecycle table.
// stateErr is returned when the current status does not allow moving to next.
func (s *LoanService) transition(
	ctx context.Context,
	id uint,
	next domain.LoanStatus,
	stateErr error,
	stamp func(loan *models.Loan),
) (*models.Loan, error) {
	var loan *models.Loan
	err := withRetry(ctx, s.maxRetries, s.metrics, "loan", func() error {
		var err error
		loan, err = s.store.Loans.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrLoanNotFound)
		}
		if !domain.LoanStatus(loan.Status).CanTransitionTo(next) {
			return stateErr
		}
		loan.Status = string(next)
		if stamp != nil {
			stamp(loan)
		}
		return s.store.Loans.Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.LoanTransition(string(next))
	slog.Info("Loan status changed", "loan", loan.LoanNumber, "status", next)
	return loan, nil
}

// Disburse activates an approved loan and records the payout in the ledger.
// The disbursement entry carries the loan's outstanding balance as balance_after.
func (s *LoanService) Disburse(ctx context.Context, id uint, actor Actor) (*LoanPayment, error) {
	var result *LoanPayment
	err := withRetry(ctx, s.maxRetries, s.metrics, "loan", func() error {
		return s.store.Atomic(ctx, func(tx *repositories.Store) error {
			loan, err := tx.Loans.GetByID(ctx, id)
			if err != nil {
				return notFound(err, ErrLoanNotFound)
			}
			if !domain.LoanStatus(loan.Status).CanTransitionTo(domain.LoanStatusActive) {
				return domain.ErrLoanNotApproved
			}

			d := today()
			loan.Status = string(domain.LoanStatusActive)
			loan.DisbursementDate = &d
			if err := tx.Loans.Update(ctx, loan); err != nil {
				return err
			}

			entry := &models.Transaction{
				MemberID:        loan.MemberID,
				TransactionType: string(domain.TxTypeLoanDisbursement),
				Amount:          loan.Amount,
				Description:     fmt.Sprintf("Loan disbursement for %s", loan.LoanNumber),
				LoanID:          &loan.ID,
				BalanceAfter:    loan.RemainingBalance,
				PerformedBy:     actor.performedBy(),
				IPAddress:       actor.IPAddress,
			}
			if err := tx.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			entry.Member = loan.Member

			result = &LoanPayment{Loan: loan, Transaction: entry}
			return nil
		})
	})
	s.metrics.LedgerOp("disburse", outcome(err))
	if err != nil {
		return nil, err
	}

	s.metrics.LoanTransition(string(domain.LoanStatusActive))
	slog.Info("Loan disbursed",
		"loan", result.Loan.LoanNumber,
		"amount", result.Loan.Amount.StringFixed(2),
		"transaction_id", result.Transaction.TransactionID,
	)
	return result, nil
}

// MakePayment applies a repayment to an active loan; paying the full remainder completes it
func (s *LoanService) MakePayment(ctx context.Context, id uint, amount decimal.Decimal, actor Actor) (*LoanPayment, error) {
	result, err := s.makePayment(ctx, id, amount, actor)
	s.metrics.LedgerOp("loan_payment", outcome(err))
	return result, err
}

func (s *LoanService) makePayment(ctx context.Context, id uint, amount decimal.Decimal, actor Actor) (*LoanPayment, error) {
	if err := requirePositive(amount); err != nil {
		return nil, err
	}
	amount = money(amount)

	var result *LoanPayment
	err := withRetry(ctx, s.maxRetries, s.metrics, "loan", func() error {
		return s.store.Atomic(ctx, func(tx *repositories.Store) error {
			loan, err := tx.Loans.GetByID(ctx, id)
			if err != nil {
				return notFound(err, ErrLoanNotFound)
			}
			if domain.LoanStatus(loan.Status) != domain.LoanStatusActive {
				return domain.ErrLoanNotActive
			}
			if amount.GreaterThan(loan.RemainingBalance) {
				return domain.ErrOverpayment
			}

			loan.RemainingBalance = loan.RemainingBalance.Sub(amount)
			if !loan.RemainingBalance.IsPositive() {
				loan.Status = string(domain.LoanStatusCompleted)
			}
			if err := tx.Loans.Update(ctx, loan); err != nil {
				return err
			}

			entry := &models.Transaction{
				MemberID:        loan.MemberID,
				TransactionType: string(domain.TxTypeLoanPayment),
				Amount:          amount,
				Description:     fmt.Sprintf("Loan payment for %s", loan.LoanNumber),
				LoanID:          &loan.ID,
				BalanceAfter:    loan.RemainingBalance,
				PerformedBy:     actor.performedBy(),
				IPAddress:       actor.IPAddress,
			}
			if err := tx.Transactions.Create(ctx, entry); err != nil {
				return err
			}
			entry.Member = loan.Member

			result = &LoanPayment{Loan: loan, Transaction: entry}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Loan.Status == string(domain.LoanStatusCompleted) {
		s.metrics.LoanTransition(result.Loan.Status)
	}
	slog.Info("Loan payment",
		"loan", result.Loan.LoanNumber,
		"amount", amount.StringFixed(2),
		"remaining", result.Loan.RemainingBalance.StringFixed(2),
		"status", result.Loan.Status,
	)
	return result, nil
}

// SweepOverdue marks active loans past their due date with a balance outstanding as defaulted.
// It returns how many loans were moved; loans changed concurrently are skipped until the next run.
func (s *LoanService) SweepOverdue(ctx context.Context, asOf time.Time) (int, error) {
	loans, err := s.store.Loans.ListOverdue(ctx, dateOnly(asOf))
	if err != nil {
		return 0, err
	}

	defaulted := 0
	for _, loan := range loans {
		if err := ctx.Err(); err != nil {
			return defaulted, err
		}
		if !domain.LoanStatus(loan.Status).CanTransitionTo(domain.LoanStatusDefaulted) {
			continue
		}
		loan.Status = string(domain.LoanStatusDefaulted)
		if err := s.store.Loans.Update(ctx, loan); err != nil {
			slog.Warn("Overdue sweep skipped loan", "loan", loan.LoanNumber, "error", err)
			continue
		}
		defaulted++
		s.metrics.LoanTransition(string(domain.LoanStatusDefaulted))
		slog.Info("Loan defaulted", "loan", loan.LoanNumber, "due_date", loan.DueDate.Format(time.DateOnly))
	}
	return defaulted, nil
}
