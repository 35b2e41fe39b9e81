package repositories

import (
	"context"
	"time"

	"sacco-admin/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoanFilter narrows loan listings
type LoanFilter struct {
	MemberID uint
	LoanType string
	Status   string
}

// LoanRepository handles loan data access
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan with its member and user
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Preload("Member.User").First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) List(ctx context.Context, filter LoanFilter, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Loan{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.LoanType != "" {
		query = query.Where("loan_type = ?", filter.LoanType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member.User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

func (r *LoanRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Member.User").
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&loans).Error
	return loans, err
}

// ListOverdue returns active loans due before asOf that still carry a balance
func (r *LoanRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Where("due_date IS NOT NULL AND due_date < ?", asOf).
		Where("remaining_balance > 0").
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

// Update writes every mutable column conditionally on the version the loan was read at
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	res := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND version = ?", loan.ID, loan.Version).
		Updates(map[string]interface{}{
			"loan_type":         loan.LoanType,
			"amount":            loan.Amount,
			"interest_rate":     loan.InterestRate,
			"term_months":       loan.TermMonths,
			"monthly_payment":   loan.MonthlyPayment,
			"total_amount":      loan.TotalAmount,
			"remaining_balance": loan.RemainingBalance,
			"status":            loan.Status,
			"application_date":  loan.ApplicationDate,
			"approval_date":     loan.ApprovalDate,
			"disbursement_date": loan.DisbursementDate,
			"due_date":          loan.DueDate,
			"purpose":           loan.Purpose,
			"guarantor_name":    loan.GuarantorName,
			"guarantor_phone":   loan.GuarantorPhone,
			"version":           gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	loan.Version++
	return nil
}

// Delete removes the loan together with its ledger entries; run inside Store.Atomic
func (r *LoanRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("loan_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Loan{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LoanRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// SumRemainingByStatus totals outstanding balances of loans in status
func (r *LoanRepository) SumRemainingByStatus(ctx context.Context, status string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(remaining_balance), 0)").
		Row().
		Scan(&sum)
	return sum, err
}
