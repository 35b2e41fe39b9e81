package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
)

// Content errors
var (
	ErrNewsNotFound     = &domain.NotFoundError{Resource: "news"}
	ErrFAQNotFound      = &domain.NotFoundError{Resource: "faq"}
	ErrDownloadNotFound = &domain.NotFoundError{Resource: "download"}
	ErrGalleryNotFound  = &domain.NotFoundError{Resource: "gallery item"}
	ErrContactNotFound  = &domain.NotFoundError{Resource: "contact info"}
)

// ContentService manages public site content: news, FAQs, downloads, gallery and contacts.
// Methods taking publicOnly restrict reads to published or active rows.
type ContentService struct {
	store *repositories.Store
}

// NewContentService creates a new content service
func NewContentService(store *repositories.Store) *ContentService {
	return &ContentService{store: store}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field, "is required")
	}
	return nil
}

// ============================================================
// News
// ============================================================

// NewsInput represents create/update news input
type NewsInput struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Image       *string `json:"image"`
	IsPublished *bool   `json:"is_published"`
}

// CreateNews stores an article authored by the caller
func (s *ContentService) CreateNews(ctx context.Context, authorID uint, input *NewsInput) (*models.News, error) {
	news := &models.News{AuthorID: authorID}
	if err := applyNews(news, input); err != nil {
		return nil, err
	}
	if err := required("title", news.Title); err != nil {
		return nil, err
	}
	if err := required("content", news.Content); err != nil {
		return nil, err
	}

	if err := s.store.News.Create(ctx, news); err != nil {
		return nil, err
	}
	slog.Info("News created", "id", news.ID, "published", news.IsPublished)
	return s.GetNews(ctx, news.ID, false)
}

func (s *ContentService) GetNews(ctx context.Context, id uint, publicOnly bool) (*models.News, error) {
	news, err := s.store.News.GetByID(ctx, id, publicOnly)
	if err != nil {
		return nil, notFound(err, ErrNewsNotFound)
	}
	return news, nil
}

func (s *ContentService) ListNews(ctx context.Context, publicOnly bool, offset, limit int) ([]*models.News, int64, error) {
	return s.store.News.List(ctx, publicOnly, offset, limit)
}

func (s *ContentService) UpdateNews(ctx context.Context, id uint, input *NewsInput) (*models.News, error) {
	news, err := s.GetNews(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyNews(news, input); err != nil {
		return nil, err
	}
	if err := s.store.News.Update(ctx, news); err != nil {
		return nil, err
	}
	return news, nil
}

func (s *ContentService) DeleteNews(ctx context.Context, id uint) error {
	return notFound(s.store.News.Delete(ctx, id), ErrNewsNotFound)
}

// applyNews copies set fields; publishing for the first time stamps published_date
func applyNews(news *models.News, input *NewsInput) error {
	if input.Title != nil {
		if err := required("title", *input.Title); err != nil {
			return err
		}
		news.Title = *input.Title
	}
	if input.Content != nil {
		news.Content = *input.Content
	}
	if input.Image != nil {
		news.Image = input.Image
	}
	if input.IsPublished != nil {
		news.IsPublished = *input.IsPublished
	}
	if news.IsPublished && news.PublishedDate == nil {
		now := time.Now()
		news.PublishedDate = &now
	}
	return nil
}

// ============================================================
// FAQs
// ============================================================

// FAQInput represents create/update FAQ input
type FAQInput struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Category *string `json:"category"`
	Order    *int    `json:"order"`
	IsActive *bool   `json:"is_active"`
}

func (s *ContentService) CreateFAQ(ctx context.Context, input *FAQInput) (*models.FAQ, error) {
	faq := &models.FAQ{IsActive: true}
	applyFAQ(faq, input)
	if err := required("question", faq.Question); err != nil {
		return nil, err
	}
	if err := required("answer", faq.Answer); err != nil {
		return nil, err
	}
	if err := s.store.FAQs.Create(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *ContentService) GetFAQ(ctx context.Context, id uint, publicOnly bool) (*models.FAQ, error) {
	faq, err := s.store.FAQs.GetByID(ctx, id, publicOnly)
	if err != nil {
		return nil, notFound(err, ErrFAQNotFound)
	}
	return faq, nil
}

// ListFAQs returns FAQs ordered by their display order, then creation time
func (s *ContentService) ListFAQs(ctx context.Context, publicOnly bool, category string) ([]*models.FAQ, error) {
	return s.store.FAQs.List(ctx, publicOnly, category)
}

func (s *ContentService) UpdateFAQ(ctx context.Context, id uint, input *FAQInput) (*models.FAQ, error) {
	faq, err := s.GetFAQ(ctx, id, false)
	if err != nil {
		return nil, err
	}
	applyFAQ(faq, input)
	if err := s.store.FAQs.Update(ctx, faq); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *ContentService) DeleteFAQ(ctx context.Context, id uint) error {
	return notFound(s.store.FAQs.Delete(ctx, id), ErrFAQNotFound)
}

func applyFAQ(faq *models.FAQ, input *FAQInput) {
	if input.Question != nil {
		faq.Question = *input.Question
	}
	if input.Answer != nil {
		faq.Answer = *input.Answer
	}
	if input.Category != nil {
		faq.Category = input.Category
	}
	if input.Order != nil {
		faq.SortOrder = *input.Order
	}
	if input.IsActive != nil {
		faq.IsActive = *input.IsActive
	}
}

// ============================================================
// Downloads
// ============================================================

// DownloadInput represents create/update download input.
// File is a path under the media root, set by the upload handler.
type DownloadInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	File        *string `json:"file"`
	FileType    *string `json:"file_type"`
	FileSize    *int64  `json:"file_size"`
	IsActive    *bool   `json:"is_active"`
}

var fileTypes = map[domain.FileType]bool{
	domain.FileTypeFinancialReport: true,
	domain.FileTypePolicy:          true,
	domain.FileTypeForm:            true,
	domain.FileTypeGuide:           true,
	domain.FileTypeOther:           true,
}

// CreateDownload stores a document uploaded by the caller
func (s *ContentService) CreateDownload(ctx context.Context, uploaderID uint, input *DownloadInput) (*models.Download, error) {
	download := &models.Download{
		UploadedByID: uploaderID,
		FileType:     string(domain.FileTypeOther),
		IsActive:     true,
	}
	if err := applyDownload(download, input); err != nil {
		return nil, err
	}
	if err := required("title", download.Title); err != nil {
		return nil, err
	}
	if err := required("file", download.File); err != nil {
		return nil, err
	}

	if err := s.store.Downloads.Create(ctx, download); err != nil {
		return nil, err
	}
	slog.Info("Download published", "id", download.ID, "file", download.File)
	return s.GetDownload(ctx, download.ID, false)
}

func (s *ContentService) GetDownload(ctx context.Context, id uint, publicOnly bool) (*models.Download, error) {
	download, err := s.store.Downloads.GetByID(ctx, id, publicOnly)
	if err != nil {
		return nil, notFound(err, ErrDownloadNotFound)
	}
	return download, nil
}

func (s *ContentService) ListDownloads(ctx context.Context, publicOnly bool, fileType string) ([]*models.Download, error) {
	return s.store.Downloads.List(ctx, publicOnly, fileType)
}

func (s *ContentService) UpdateDownload(ctx context.Context, id uint, input *DownloadInput) (*models.Download, error) {
	download, err := s.GetDownload(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyDownload(download, input); err != nil {
		return nil, err
	}
	if err := s.store.Downloads.Update(ctx, download); err != nil {
		return nil, err
	}
	return download, nil
}

func (s *ContentService) DeleteDownload(ctx context.Context, id uint) error {
	return notFound(s.store.Downloads.Delete(ctx, id), ErrDownloadNotFound)
}

// IncrementDownload counts one download and returns the new total
func (s *ContentService) IncrementDownload(ctx context.Context, id uint, publicOnly bool) (int, error) {
	count, err := s.store.Downloads.IncrementCount(ctx, id, publicOnly)
	if err != nil {
		return 0, notFound(err, ErrDownloadNotFound)
	}
	return count, nil
}

func applyDownload(download *models.Download, input *DownloadInput) error {
	if input.FileType != nil {
		if !fileTypes[domain.FileType(*input.FileType)] {
			return domain.Invalid("file_type", "must be financial_report, policy, form, guide or other")
		}
		download.FileType = *input.FileType
	}
	if input.Title != nil {
		download.Title = *input.Title
	}
	if input.Description != nil {
		download.Description = input.Description
	}
	if input.File != nil {
		download.File = *input.File
	}
	if input.FileSize != nil {
		download.FileSize = input.FileSize
	}
	if input.IsActive != nil {
		download.IsActive = *input.IsActive
	}
	return nil
}

// ============================================================
// Gallery
// ============================================================

// GalleryInput represents create/update gallery input
type GalleryInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	IsActive    *bool   `json:"is_active"`
}

func (s *ContentService) CreateGallery(ctx context.Context, uploaderID uint, input *GalleryInput) (*models.Gallery, error) {
	item := &models.Gallery{UploadedByID: uploaderID, IsActive: true}
	applyGallery(item, input)
	if err := required("title", item.Title); err != nil {
		return nil, err
	}
	if err := required("image", item.Image); err != nil {
		return nil, err
	}
	if err := s.store.Gallery.Create(ctx, item); err != nil {
		return nil, err
	}
	return s.GetGallery(ctx, item.ID, false)
}

func (s *ContentService) GetGallery(ctx context.Context, id uint, publicOnly bool) (*models.Gallery, error) {
	item, err := s.store.Gallery.GetByID(ctx, id, publicOnly)
	if err != nil {
		return nil, notFound(err, ErrGalleryNotFound)
	}
	return item, nil
}

func (s *ContentService) ListGallery(ctx context.Context, publicOnly bool) ([]*models.Gallery, error) {
	return s.store.Gallery.List(ctx, publicOnly)
}

func (s *ContentService) UpdateGallery(ctx context.Context, id uint, input *GalleryInput) (*models.Gallery, error) {
	item, err := s.GetGallery(ctx, id, false)
	if err != nil {
		return nil, err
	}
	applyGallery(item, input)
	if err := s.store.Gallery.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ContentService) DeleteGallery(ctx context.Context, id uint) error {
	return notFound(s.store.Gallery.Delete(ctx, id), ErrGalleryNotFound)
}

func applyGallery(item *models.Gallery, input *GalleryInput) {
	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = input.Description
	}
	if input.Image != nil {
		item.Image = *input.Image
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
}

// ============================================================
// Contact info
// ============================================================

// ContactInput represents create/update contact info input
type ContactInput struct {
	Branch       *string `json:"branch"`
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	Address      *string `json:"address"`
	WorkingHours *string `json:"working_hours"`
	IsActive     *bool   `json:"is_active"`
}

var branches = map[domain.Branch]bool{
	domain.BranchMain: true,
	domain.Branch1:    true,
	domain.Branch2:    true,
	domain.Branch3:    true,
}

func (s *ContentService) CreateContact(ctx context.Context, input *ContactInput) (*models.ContactInfo, error) {
	info := &models.ContactInfo{Branch: string(domain.BranchMain), IsActive: true}
	if err := applyContact(info, input); err != nil {
		return nil, err
	}
	for _, f := range [][2]string{
		{"name", info.Name}, {"phone", info.Phone}, {"email", info.Email}, {"address", info.Address},
	} {
		if err := required(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	if err := s.store.Contacts.Create(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *ContentService) GetContact(ctx context.Context, id uint, publicOnly bool) (*models.ContactInfo, error) {
	info, err := s.store.Contacts.GetByID(ctx, id, publicOnly)
	if err != nil {
		return nil, notFound(err, ErrContactNotFound)
	}
	return info, nil
}

func (s *ContentService) ListContacts(ctx context.Context, publicOnly bool) ([]*models.ContactInfo, error) {
	return s.store.Contacts.List(ctx, publicOnly)
}

func (s *ContentService) UpdateContact(ctx context.Context, id uint, input *ContactInput) (*models.ContactInfo, error) {
	info, err := s.GetContact(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if err := applyContact(info, input); err != nil {
		return nil, err
	}
	if err := s.store.Contacts.Update(ctx, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *ContentService) DeleteContact(ctx context.Context, id uint) error {
	return notFound(s.store.Contacts.Delete(ctx, id), ErrContactNotFound)
}

func applyContact(info *models.ContactInfo, input *ContactInput) error {
	if input.Branch != nil {
		if !branches[domain.Branch(*input.Branch)] {
			return domain.Invalid("branch", "must be main, branch1, branch2 or branch3")
		}
		info.Branch = *input.Branch
	}
	if input.Name != nil {
		info.Name = *input.Name
	}
	if input.Phone != nil {
		info.Phone = *input.Phone
	}
	if input.Email != nil {
		info.Email = *input.Email
	}
	if input.Address != nil {
		info.Address = *input.Address
	}
	if input.WorkingHours != nil {
		info.WorkingHours = input.WorkingHours
	}
	if input.IsActive != nil {
		info.IsActive = *input.IsActive
	}
	return nil
}
