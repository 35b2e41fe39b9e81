package services

import (
	"context"
	"log/slog"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/civil"
	"sacco-admin/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// Dividend service errors
var (
	ErrDividendNotFound        = &domain.NotFoundError{Resource: "dividend"}
	ErrDividendPaymentNotFound = &domain.NotFoundError{Resource: "dividend payment"}
)

// DividendService declares dividends and fans them out to shareholders
type DividendService struct {
	store   *repositories.Store
	metrics *metrics.Metrics
}

// NewDividendService creates a new dividend service
func NewDividendService(store *repositories.Store, m *metrics.Metrics) *DividendService {
	return &DividendService{store: store, metrics: m}
}

// DividendInput represents create/update dividend input
type DividendInput struct {
	Year            *int             `json:"year"`
	AmountPerShare  *decimal.Decimal `json:"amount_per_share"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	DeclarationDate *civil.Date      `json:"declaration_date"`
	PaymentDate     *civil.Date      `json:"payment_date"`
	IsPaid          *bool            `json:"is_paid"`
}

// CalculationResult summarizes one fan-out run
type CalculationResult struct {
	Created  int             `json:"created"`
	Existing int             `json:"existing"`
	Total    decimal.Decimal `json:"total"`
}

func (s *DividendService) Create(ctx context.Context, input *DividendInput) (*models.Dividend, error) {
	if input.Year == nil || *input.Year < 1900 {
		return nil, domain.Invalid("year", "is required")
	}
	if input.AmountPerShare == nil || input.AmountPerShare.IsNegative() {
		return nil, domain.Invalid("amount_per_share", "must not be negative")
	}

	dividend := &models.Dividend{
		Year:            *input.Year,
		AmountPerShare:  money(*input.AmountPerShare),
		TotalAmount:     decimal.Zero,
		DeclarationDate: today(),
		IsPaid:          input.IsPaid != nil && *input.IsPaid,
	}
	if input.TotalAmount != nil {
		dividend.TotalAmount = money(*input.TotalAmount)
	}
	if input.DeclarationDate != nil {
		dividend.DeclarationDate = input.DeclarationDate.Time
	}
	if input.PaymentDate != nil {
		d := input.PaymentDate.Time
		dividend.PaymentDate = &d
	}

	if err := s.store.Dividends.Create(ctx, dividend); err != nil {
		return nil, err
	}
	slog.Info("Dividend declared", "year", dividend.Year, "amount_per_share", dividend.AmountPerShare.StringFixed(2))
	return dividend, nil
}

func (s *DividendService) Get(ctx context.Context, id uint) (*models.Dividend, error) {
	dividend, err := s.store.Dividends.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrDividendNotFound)
	}
	return dividend, nil
}

func (s *DividendService) List(ctx context.Context, filter repositories.DividendFilter, offset, limit int) ([]*models.Dividend, int64, error) {
	return s.store.Dividends.List(ctx, filter, offset, limit)
}

func (s *DividendService) Update(ctx context.Context, id uint, input *DividendInput) (*models.Dividend, error) {
	dividend, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Year != nil {
		dividend.Year = *input.Year
	}
	if input.AmountPerShare != nil {
		if input.AmountPerShare.IsNegative() {
			return nil, domain.Invalid("amount_per_share", "must not be negative")
		}
		dividend.AmountPerShare = money(*input.AmountPerShare)
	}
	if input.TotalAmount != nil {
		dividend.TotalAmount = money(*input.TotalAmount)
	}
	if input.DeclarationDate != nil {
		dividend.DeclarationDate = input.DeclarationDate.Time
	}
	if input.PaymentDate != nil {
		d := input.PaymentDate.Time
		dividend.PaymentDate = &d
	}
	if input.IsPaid != nil {
		dividend.IsPaid = *input.IsPaid
	}

	if err := s.store.Dividends.Update(ctx, dividend); err != nil {
		return nil, err
	}
	return dividend, nil
}

// Delete removes a dividend together with its payments
func (s *DividendService) Delete(ctx context.Context, id uint) error {
	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		return tx.Dividends.Delete(ctx, id)
	})
	return notFound(err, ErrDividendNotFound)
}

// CalculatePayments materializes one payment per member holding active shares.
// Quantities are summed across all of a member's active share rows first, then each
// (dividend, member) payment is fetched or created; reruns never duplicate or rewrite rows.
// The declared total_amount is left as entered; Total sums the payments on record.
func (s *DividendService) CalculatePayments(ctx context.Context, id uint) (*CalculationResult, error) {
	result := &CalculationResult{Total: decimal.Zero}

	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		dividend, err := tx.Dividends.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrDividendNotFound)
		}

		holdings, err := tx.Shares.ActiveTotalsByMember(ctx)
		if err != nil {
			return err
		}

		for _, h := range holdings {
			_, created, err := tx.DividendPayments.GetOrCreate(ctx, &models.DividendPayment{
				DividendID:  dividend.ID,
				MemberID:    h.MemberID,
				SharesOwned: h.Quantity,
				Amount:      money(dividend.AmountPerShare.Mul(decimal.NewFromInt(int64(h.Quantity)))),
			})
			if err != nil {
				return err
			}
			if created {
				result.Created++
			} else {
				result.Existing++
			}
		}

		payments, err := tx.DividendPayments.ListByDividend(ctx, dividend.ID)
		if err != nil {
			return err
		}
		for _, p := range payments {
			result.Total = result.Total.Add(p.Amount)
		}
		result.Total = money(result.Total)
		return nil
	})
	s.metrics.LedgerOp("calculate_dividend", outcome(err))
	if err != nil {
		return nil, err
	}

	slog.Info("Dividend payments calculated",
		"dividend_id", id,
		"created", result.Created,
		"existing", result.Existing,
		"total", result.Total.StringFixed(2),
	)
	return result, nil
}

// MarkPaid flags the dividend and all of its payments as paid on the given date (today when nil)
func (s *DividendService) MarkPaid(ctx context.Context, id uint, paidOn *time.Time) (*models.Dividend, error) {
	date := today()
	if paidOn != nil {
		date = dateOnly(*paidOn)
	}

	var dividend *models.Dividend
	var updated int64
	err := s.store.Atomic(ctx, func(tx *repositories.Store) error {
		var err error
		dividend, err = tx.Dividends.GetByID(ctx, id)
		if err != nil {
			return notFound(err, ErrDividendNotFound)
		}
		updated, err = tx.DividendPayments.MarkPaidByDividend(ctx, id, date)
		if err != nil {
			return err
		}
		dividend.IsPaid = true
		dividend.PaymentDate = &date
		return tx.Dividends.Update(ctx, dividend)
	})
	s.metrics.LedgerOp("pay_dividend", outcome(err))
	if err != nil {
		return nil, err
	}

	slog.Info("Dividend paid", "dividend_id", id, "payments", updated)
	return dividend, nil
}

// GetPayment returns one dividend payment
func (s *DividendService) GetPayment(ctx context.Context, id uint) (*models.DividendPayment, error) {
	payment, err := s.store.DividendPayments.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrDividendPaymentNotFound)
	}
	return payment, nil
}

// ListPayments lists dividend payments
func (s *DividendService) ListPayments(ctx context.Context, filter repositories.DividendPaymentFilter, offset, limit int) ([]*models.DividendPayment, int64, error) {
	return s.store.DividendPayments.List(ctx, filter, offset, limit)
}
