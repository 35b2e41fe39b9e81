package models

import (
	"time"
)

// ============================================================
// Public Content
// ============================================================

// News represents news and announcements
type News struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Image         *string    `gorm:"size:255" json:"image"`
	AuthorID      uint       `gorm:"not null;index" json:"author"`
	IsPublished   bool       `gorm:"not null;index" json:"is_published"`
	PublishedDate *time.Time `json:"published_date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (News) TableName() string {
	return "news"
}

// NewsResponse DTO
type NewsResponse struct {
	*News
	AuthorName string `json:"author_name"`
}

func (n *News) ToResponse() *NewsResponse {
	resp := &NewsResponse{News: n}
	if n.Author != nil {
		resp.AuthorName = n.Author.FullName()
	}
	return resp
}

// FAQ represents a frequently asked question
type FAQ struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Category  *string   `gorm:"size:50" json:"category"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"order"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// Download represents a downloadable document
type Download struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description"`
	File          string    `gorm:"size:255;not null" json:"file"`
	FileType      string    `gorm:"size:20;not null;default:'other'" json:"file_type"`
	FileSize      *int64    `json:"file_size"`
	DownloadCount int       `gorm:"not null;default:0" json:"download_count"`
	IsActive      bool      `gorm:"not null;index" json:"is_active"`
	UploadedByID  uint      `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Download) TableName() string {
	return "downloads"
}

// DownloadResponse DTO
type DownloadResponse struct {
	*Download
	UploadedByName string `json:"uploaded_by_name"`
}

func (d *Download) ToResponse() *DownloadResponse {
	resp := &DownloadResponse{Download: d}
	if d.UploadedBy != nil {
		resp.UploadedByName = d.UploadedBy.FullName()
	}
	return resp
}

// Gallery represents a gallery image
type Gallery struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  *string   `gorm:"type:text" json:"description"`
	Image        string    `gorm:"size:255;not null" json:"image"`
	UploadedByID uint      `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Gallery) TableName() string {
	return "gallery"
}

// GalleryResponse DTO
type GalleryResponse struct {
	*Gallery
	UploadedByName string `json:"uploaded_by_name"`
}

func (g *Gallery) ToResponse() *GalleryResponse {
	resp := &GalleryResponse{Gallery: g}
	if g.UploadedBy != nil {
		resp.UploadedByName = g.UploadedBy.FullName()
	}
	return resp
}

// ContactInfo represents a branch's contact details
type ContactInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Branch       string    `gorm:"size:20;not null;default:'main'" json:"branch"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Phone        string    `gorm:"size:15;not null" json:"phone"`
	Email        string    `gorm:"size:254;not null" json:"email"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	WorkingHours *string   `gorm:"size:100" json:"working_hours"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}

// ============================================================
// Feedback & Settings
// ============================================================

// CustomerFeedback represents a message submitted through the public site
type CustomerFeedback struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Email         string     `gorm:"size:254;not null" json:"email"`
	Phone         *string    `gorm:"size:15" json:"phone"`
	Subject       string     `gorm:"size:200;not null" json:"subject"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Status        string     `gorm:"size:20;not null;default:'new';index" json:"status"`
	AdminResponse *string    `gorm:"type:text" json:"admin_response"`
	RespondedByID *uint      `gorm:"column:responded_by" json:"responded_by"`
	ResponseDate  *time.Time `json:"response_date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	RespondedBy *User `gorm:"foreignKey:RespondedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (CustomerFeedback) TableName() string {
	return "customer_feedback"
}

// CustomerFeedbackResponse DTO
type CustomerFeedbackResponse struct {
	*CustomerFeedback
	RespondedByName string `json:"responded_by_name,omitempty"`
}

func (f *CustomerFeedback) ToResponse() *CustomerFeedbackResponse {
	resp := &CustomerFeedbackResponse{CustomerFeedback: f}
	if f.RespondedBy != nil {
		resp.RespondedByName = f.RespondedBy.FullName()
	}
	return resp
}

// SystemSetting is a keyed configuration value editable at runtime
type SystemSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"column:setting_key;uniqueIndex;size:100;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	SettingType string    `gorm:"size:20;not null;default:'general'" json:"setting_type"`
	Description *string   `gorm:"type:text" json:"description"`
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}
