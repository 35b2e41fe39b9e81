package repositories

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountFilter narrows savings account listings
type AccountFilter struct {
	MemberID    uint
	AccountType string
	IsActive    *bool
}

// SavingsAccountRepository handles savings account data access
type SavingsAccountRepository struct {
	db *gorm.DB
}

// NewSavingsAccountRepository creates a new savings account repository
func NewSavingsAccountRepository(db *gorm.DB) *SavingsAccountRepository {
	return &SavingsAccountRepository{db: db}
}

func (r *SavingsAccountRepository) Create(ctx context.Context, account *models.SavingsAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// GetByID gets an account with its member and user
func (r *SavingsAccountRepository) GetByID(ctx context.Context, id uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.WithContext(ctx).Preload("Member.User").First(&account, id).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *SavingsAccountRepository) List(ctx context.Context, filter AccountFilter, offset, limit int) ([]*models.SavingsAccount, int64, error) {
	var accounts []*models.SavingsAccount
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SavingsAccount{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.AccountType != "" {
		query = query.Where("account_type = ?", filter.AccountType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member.User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&accounts).Error

	return accounts, total, err
}

func (r *SavingsAccountRepository) ListByMember(ctx context.Context, memberID uint) ([]*models.SavingsAccount, error) {
	var accounts []*models.SavingsAccount
	err := r.db.WithContext(ctx).
		Preload("Member.User").
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&accounts).Error
	return accounts, err
}

// Update writes the account conditionally on the version it was read at.
// On success the in-memory version is advanced; a concurrent writer yields ErrStaleVersion.
func (r *SavingsAccountRepository) Update(ctx context.Context, account *models.SavingsAccount) error {
	res := r.db.WithContext(ctx).
		Model(&models.SavingsAccount{}).
		Where("id = ? AND version = ?", account.ID, account.Version).
		Updates(map[string]interface{}{
			"account_type":  account.AccountType,
			"balance":       account.Balance,
			"interest_rate": account.InterestRate,
			"is_active":     account.IsActive,
			"version":       gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleVersion
	}
	account.Version++
	return nil
}

// Delete removes the account together with its ledger entries; run inside Store.Atomic
func (r *SavingsAccountRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("savings_account_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.SavingsAccount{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumActiveBalances totals balances across active accounts
func (r *SavingsAccountRepository) SumActiveBalances(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.SavingsAccount{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(balance), 0)").
		Row().
		Scan(&sum)
	return sum, err
}
