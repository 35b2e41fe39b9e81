package repositories

import (
	"context"
	"time"

	"sacco-admin/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DividendFilter narrows dividend listings
type DividendFilter struct {
	Year   int
	IsPaid *bool
}

// DividendRepository handles dividend declarations
type DividendRepository struct {
	db *gorm.DB
}

// NewDividendRepository creates a new dividend repository
func NewDividendRepository(db *gorm.DB) *DividendRepository {
	return &DividendRepository{db: db}
}

func (r *DividendRepository) Create(ctx context.Context, dividend *models.Dividend) error {
	return r.db.WithContext(ctx).Create(dividend).Error
}

func (r *DividendRepository) GetByID(ctx context.Context, id uint) (*models.Dividend, error) {
	var dividend models.Dividend
	if err := r.db.WithContext(ctx).First(&dividend, id).Error; err != nil {
		return nil, err
	}
	return &dividend, nil
}

// List lists dividends, latest year first
func (r *DividendRepository) List(ctx context.Context, filter DividendFilter, offset, limit int) ([]*models.Dividend, int64, error) {
	var dividends []*models.Dividend
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Dividend{})
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("year DESC, id DESC").Offset(offset).Limit(limit).Find(&dividends).Error
	return dividends, total, err
}

func (r *DividendRepository) Update(ctx context.Context, dividend *models.Dividend) error {
	return r.db.WithContext(ctx).Save(dividend).Error
}

// Delete removes a dividend and its payments; run inside Store.Atomic
func (r *DividendRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("dividend_id = ?", id).Delete(&models.DividendPayment{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Dividend{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumPaidTotals totals total_amount over paid dividends
func (r *DividendRepository) SumPaidTotals(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Dividend{}).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().
		Scan(&sum)
	return sum, err
}

// ============================================================
// Dividend Payments
// ============================================================

// DividendPaymentFilter narrows dividend payment listings
type DividendPaymentFilter struct {
	DividendID uint
	MemberID   uint
	IsPaid     *bool
}

// DividendPaymentRepository handles per-member dividend payments
type DividendPaymentRepository struct {
	db *gorm.DB
}

// NewDividendPaymentRepository creates a new dividend payment repository
func NewDividendPaymentRepository(db *gorm.DB) *DividendPaymentRepository {
	return &DividendPaymentRepository{db: db}
}

// GetOrCreate returns the payment keyed by (dividend, member), creating it from
// defaults when absent. Existing rows are returned untouched.
func (r *DividendPaymentRepository) GetOrCreate(ctx context.Context, defaults *models.DividendPayment) (*models.DividendPayment, bool, error) {
	var existing models.DividendPayment
	err := r.db.WithContext(ctx).
		Where("dividend_id = ? AND member_id = ?", defaults.DividendID, defaults.MemberID).
		Limit(1).
		Find(&existing).Error
	if err != nil {
		return nil, false, err
	}
	if existing.ID != 0 {
		return &existing, false, nil
	}

	if err := r.db.WithContext(ctx).Create(defaults).Error; err != nil {
		return nil, false, err
	}
	return defaults, true, nil
}

func (r *DividendPaymentRepository) GetByID(ctx context.Context, id uint) (*models.DividendPayment, error) {
	var payment models.DividendPayment
	err := r.db.WithContext(ctx).Preload("Member.User").Preload("Dividend").First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *DividendPaymentRepository) List(ctx context.Context, filter DividendPaymentFilter, offset, limit int) ([]*models.DividendPayment, int64, error) {
	var payments []*models.DividendPayment
	var total int64

	query := r.db.WithContext(ctx).Model(&models.DividendPayment{})
	if filter.DividendID != 0 {
		query = query.Where("dividend_id = ?", filter.DividendID)
	}
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.IsPaid != nil {
		query = query.Where("is_paid = ?", *filter.IsPaid)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member.User").
		Preload("Dividend").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// ListByDividend returns all payments of a dividend ordered by member
func (r *DividendPaymentRepository) ListByDividend(ctx context.Context, dividendID uint) ([]*models.DividendPayment, error) {
	var payments []*models.DividendPayment
	err := r.db.WithContext(ctx).
		Where("dividend_id = ?", dividendID).
		Order("member_id").
		Find(&payments).Error
	return payments, err
}

// MarkPaidByDividend flags every unpaid payment of a dividend as paid on paidOn
func (r *DividendPaymentRepository) MarkPaidByDividend(ctx context.Context, dividendID uint, paidOn time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.DividendPayment{}).
		Where("dividend_id = ? AND is_paid = ?", dividendID, false).
		Updates(map[string]interface{}{"is_paid": true, "payment_date": paidOn})
	return res.RowsAffected, res.Error
}
