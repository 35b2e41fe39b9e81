package repositories

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// FeedbackRepository handles customer feedback data access
type FeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.CustomerFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uint) (*models.CustomerFeedback, error) {
	var feedback models.CustomerFeedback
	if err := r.db.WithContext(ctx).Preload("RespondedBy").First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// List lists feedback newest first, optionally by status
func (r *FeedbackRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.CustomerFeedback, int64, error) {
	var items []*models.CustomerFeedback
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CustomerFeedback{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("RespondedBy").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *FeedbackRepository) Update(ctx context.Context, feedback *models.CustomerFeedback) error {
	return r.db.WithContext(ctx).Omit("RespondedBy").Save(feedback).Error
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.CustomerFeedback{}, id)
}

func (r *FeedbackRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CustomerFeedback{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// ============================================================
// System Settings
// ============================================================

// SettingRepository handles system setting data access
type SettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Create(ctx context.Context, setting *models.SystemSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

func (r *SettingRepository) GetByID(ctx context.Context, id uint) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	if err := r.db.WithContext(ctx).First(&setting, id).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepository) GetByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	var setting models.SystemSetting
	if err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SystemSetting{}).Where("setting_key = ?", key).Count(&count).Error
	return count > 0, err
}

func (r *SettingRepository) List(ctx context.Context, settingType string) ([]*models.SystemSetting, error) {
	var settings []*models.SystemSetting
	query := r.db.WithContext(ctx)
	if settingType != "" {
		query = query.Where("setting_type = ?", settingType)
	}
	err := query.Order("setting_key ASC").Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) Update(ctx context.Context, setting *models.SystemSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

func (r *SettingRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.SystemSetting{}, id)
}
