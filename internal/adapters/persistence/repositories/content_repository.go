package repositories

import (
	"context"

	"sacco-admin/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// deleteByID hard deletes one row and reports ErrRecordNotFound when nothing matched
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	res := db.WithContext(ctx).Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ============================================================
// News
// ============================================================

// NewsRepository handles news data access
type NewsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *gorm.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) Create(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Create(news).Error
}

// GetByID gets a news item; publishedOnly hides drafts
func (r *NewsRepository) GetByID(ctx context.Context, id uint, publishedOnly bool) (*models.News, error) {
	var news models.News
	query := r.db.WithContext(ctx).Preload("Author")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// List lists news newest first; publishedOnly hides drafts
func (r *NewsRepository) List(ctx context.Context, publishedOnly bool, offset, limit int) ([]*models.News, int64, error) {
	var items []*models.News
	var total int64

	query := r.db.WithContext(ctx).Model(&models.News{})
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, total, err
}

func (r *NewsRepository) Update(ctx context.Context, news *models.News) error {
	return r.db.WithContext(ctx).Omit("Author").Save(news).Error
}

func (r *NewsRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.News{}, id)
}

// ============================================================
// FAQ
// ============================================================

// FAQRepository handles FAQ data access
type FAQRepository struct {
	db *gorm.DB
}

// NewFAQRepository creates a new FAQ repository
func NewFAQRepository(db *gorm.DB) *FAQRepository {
	return &FAQRepository{db: db}
}

func (r *FAQRepository) Create(ctx context.Context, faq *models.FAQ) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

func (r *FAQRepository) GetByID(ctx context.Context, id uint, activeOnly bool) (*models.FAQ, error) {
	var faq models.FAQ
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&faq, id).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// List lists FAQs by display order, then age
func (r *FAQRepository) List(ctx context.Context, activeOnly bool, category string) ([]*models.FAQ, error) {
	var faqs []*models.FAQ
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("sort_order ASC, created_at ASC, id ASC").Find(&faqs).Error
	return faqs, err
}

func (r *FAQRepository) Update(ctx context.Context, faq *models.FAQ) error {
	return r.db.WithContext(ctx).Save(faq).Error
}

func (r *FAQRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.FAQ{}, id)
}

// ============================================================
// Downloads
// ============================================================

// DownloadRepository handles downloadable document data access
type DownloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository creates a new download repository
func NewDownloadRepository(db *gorm.DB) *DownloadRepository {
	return &DownloadRepository{db: db}
}

func (r *DownloadRepository) Create(ctx context.Context, download *models.Download) error {
	return r.db.WithContext(ctx).Create(download).Error
}

func (r *DownloadRepository) GetByID(ctx context.Context, id uint, activeOnly bool) (*models.Download, error) {
	var download models.Download
	query := r.db.WithContext(ctx).Preload("UploadedBy")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&download, id).Error; err != nil {
		return nil, err
	}
	return &download, nil
}

func (r *DownloadRepository) List(ctx context.Context, activeOnly bool, fileType string) ([]*models.Download, error) {
	var downloads []*models.Download
	query := r.db.WithContext(ctx).Preload("UploadedBy")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if fileType != "" {
		query = query.Where("file_type = ?", fileType)
	}
	err := query.Order("created_at DESC, id DESC").Find(&downloads).Error
	return downloads, err
}

func (r *DownloadRepository) Update(ctx context.Context, download *models.Download) error {
	return r.db.WithContext(ctx).Omit("UploadedBy").Save(download).Error
}

// IncrementCount bumps download_count atomically and returns the new value
func (r *DownloadRepository) IncrementCount(ctx context.Context, id uint, activeOnly bool) (int, error) {
	query := r.db.WithContext(ctx).Model(&models.Download{}).Where("id = ?", id)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	res := query.UpdateColumn("download_count", gorm.Expr("download_count + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var count int
	err := r.db.WithContext(ctx).
		Model(&models.Download{}).
		Where("id = ?", id).
		Select("download_count").
		Row().
		Scan(&count)
	return count, err
}

func (r *DownloadRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Download{}, id)
}

// ============================================================
// Gallery
// ============================================================

// GalleryRepository handles gallery data access
type GalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository creates a new gallery repository
func NewGalleryRepository(db *gorm.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) Create(ctx context.Context, item *models.Gallery) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GalleryRepository) GetByID(ctx context.Context, id uint, activeOnly bool) (*models.Gallery, error) {
	var item models.Gallery
	query := r.db.WithContext(ctx).Preload("UploadedBy")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GalleryRepository) List(ctx context.Context, activeOnly bool) ([]*models.Gallery, error) {
	var items []*models.Gallery
	query := r.db.WithContext(ctx).Preload("UploadedBy")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("created_at DESC, id DESC").Find(&items).Error
	return items, err
}

func (r *GalleryRepository) Update(ctx context.Context, item *models.Gallery) error {
	return r.db.WithContext(ctx).Omit("UploadedBy").Save(item).Error
}

func (r *GalleryRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Gallery{}, id)
}

// ============================================================
// Contact Info
// ============================================================

// ContactInfoRepository handles branch contact data access
type ContactInfoRepository struct {
	db *gorm.DB
}

// NewContactInfoRepository creates a new contact info repository
func NewContactInfoRepository(db *gorm.DB) *ContactInfoRepository {
	return &ContactInfoRepository{db: db}
}

func (r *ContactInfoRepository) Create(ctx context.Context, info *models.ContactInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

func (r *ContactInfoRepository) GetByID(ctx context.Context, id uint, activeOnly bool) (*models.ContactInfo, error) {
	var info models.ContactInfo
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.First(&info, id).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *ContactInfoRepository) List(ctx context.Context, activeOnly bool) ([]*models.ContactInfo, error) {
	var infos []*models.ContactInfo
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("branch ASC, id ASC").Find(&infos).Error
	return infos, err
}

func (r *ContactInfoRepository) Update(ctx context.Context, info *models.ContactInfo) error {
	return r.db.WithContext(ctx).Save(info).Error
}

func (r *ContactInfoRepository) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.ContactInfo{}, id)
}
