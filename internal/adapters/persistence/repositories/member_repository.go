package repositories

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MemberFilter narrows member listings
type MemberFilter struct {
	Status string
	Search string
}

// MemberRepository handles the member registry
type MemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// GetByID gets a member with its user
func (r *MemberRepository) GetByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("User").First(&member, id).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) GetByUserID(ctx context.Context, userID uint) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) ExistsByUserID(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

// List lists members with filters and pagination, newest first
func (r *MemberRepository) List(ctx context.Context, filter MemberFilter, offset, limit int) ([]*models.Member, int64, error) {
	var members []*models.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Member{})
	if filter.Status != "" {
		query = query.Where("members.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = members.user_id").
			Where("members.member_id LIKE ? OR users.first_name LIKE ? OR users.last_name LIKE ? OR users.email LIKE ?",
				like, like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("User").
		Order("members.created_at DESC, members.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error

	return members, total, err
}

// Update saves profile fields; the membership number and user link are never rewritten
func (r *MemberRepository) Update(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).
		Model(member).
		Select("status", "membership_date", "emergency_contact_name", "emergency_contact_phone",
			"employment_status", "employer_name", "monthly_income").
		Updates(member).Error
}

// Delete removes a member and every financial record it owns.
// Callers run it inside Store.Atomic so the cascade is all-or-nothing.
func (r *MemberRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	owned := []interface{}{
		&models.DividendPayment{},
		&models.Transaction{},
		&models.Share{},
		&models.Loan{},
		&models.SavingsAccount{},
	}
	for _, model := range owned {
		if err := db.Where("member_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	res := db.Delete(&models.Member{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error
	return count, err
}

func (r *MemberRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
