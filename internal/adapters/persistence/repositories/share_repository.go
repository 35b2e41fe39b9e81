package repositories

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ShareFilter narrows share listings
type ShareFilter struct {
	MemberID uint
	IsActive *bool
}

// MemberShareTotal is the active share quantity held by one member
type MemberShareTotal struct {
	MemberID uint
	Quantity int
}

// ShareRepository handles share data access
type ShareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository
func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

func (r *ShareRepository) Create(ctx context.Context, share *models.Share) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *ShareRepository) GetByID(ctx context.Context, id uint) (*models.Share, error) {
	var share models.Share
	err := r.db.WithContext(ctx).Preload("Member.User").First(&share, id).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *ShareRepository) List(ctx context.Context, filter ShareFilter, offset, limit int) ([]*models.Share, int64, error) {
	var shares []*models.Share
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Share{})
	if filter.MemberID != 0 {
		query = query.Where("member_id = ?", filter.MemberID)
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
		Find(&shares).Error

	return shares, total, err
}

func (r *ShareRepository) Update(ctx context.Context, share *models.Share) error {
	return r.db.WithContext(ctx).Save(share).Error
}

func (r *ShareRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Share{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ActiveTotalsByMember sums active share quantities per member, ordered by member
func (r *ShareRepository) ActiveTotalsByMember(ctx context.Context) ([]MemberShareTotal, error) {
	var totals []MemberShareTotal
	err := r.db.WithContext(ctx).
		Model(&models.Share{}).
		Select("member_id, SUM(quantity) AS quantity").
		Where("is_active = ?", true).
		Group("member_id").
		Order("member_id").
		Scan(&totals).Error
	return totals, err
}

// SumActiveQuantity totals the quantity of all active shares
func (r *ShareRepository) SumActiveQuantity(ctx context.Context) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&models.Share{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(quantity), 0)").
		Row().
		Scan(&sum)
	return sum, err
}
