package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Actor identifies who triggered a ledger mutation, for the audit columns
type Actor struct {
	UserID    uint
	IPAddress string
}

func (a Actor) performedBy() *uint {
	if a.UserID == 0 {
		return nil
	}
	id := a.UserID
	return &id
}

// withRetry re-runs fn while it fails on a stale row version.
// Exhausting attempts yields domain.ErrConcurrentUpdate.
func withRetry(ctx context.Context, attempts int, m *metrics.Metrics, entity string, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; ; attempt++ {
		err := fn()
		if !errors.Is(err, repositories.ErrStaleVersion) {
			return err
		}
		if attempt >= attempts {
			slog.Warn("Optimistic lock retries exhausted", "entity", entity, "attempts", attempt)
			return domain.ErrConcurrentUpdate
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		m.ConflictRetry(entity)
		slog.Debug("Version conflict, retrying", "entity", entity, "attempt", attempt)
	}
}

// notFound translates gorm's missing-row error into a named domain error
func notFound(err error, resource *domain.NotFoundError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return resource
	}
	return err
}

// requirePositive validates a monetary amount: strictly positive and in whole cents
func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// today returns the current calendar date at UTC midnight
func today() time.Time {
	return dateOnly(time.Now())
}

// dateOnly truncates t to its calendar date at UTC midnight
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// money rounds to cents
func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// outcome classifies an operation error for metrics labels
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrOverpayment):
		return "overpayment"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrLoanNotPending),
		errors.Is(err, domain.ErrLoanNotApproved),
		errors.Is(err, domain.ErrLoanNotActive):
		return "invalid_state"
	}
	return "error"
}
