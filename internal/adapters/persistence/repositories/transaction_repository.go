package repositories

import (
	"context"
	"time"

	"sacco-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// TransactionFilter narrows ledger listings
type TransactionFilter struct {
	MemberID        uint
	TransactionType string
}

// TransactionRepository handles the append-only ledger; it exposes no update or delete
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *TransactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).Preload("Member.User").First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// List lists ledger entries newest first
func (r *TransactionRepository) List(ctx context.Context, filter TransactionFilter, offset, limit int) ([]*models.Transaction, int64, error) {
	var txs []*models.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Transaction{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.TransactionType != "" {
		query = query.Where("transaction_type = ?", filter.TransactionType)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Member.User").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error

	return txs, total, err
}

// ListByMember returns the latest limit entries for a member, newest first
func (r *TransactionRepository) ListByMember(ctx context.Context, memberID uint, limit int) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Member.User").
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// ListByAccount returns every entry of a savings account in posting order
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uint) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("savings_account_id = ?", accountID).
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

// ListByLoan returns every entry of a loan in posting order
func (r *TransactionRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

// CountSince counts entries posted at or after since
func (r *TransactionRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
