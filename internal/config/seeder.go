package config

import (
	"log/slog"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/core/domain"
	"sacco-admin/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db            *gorm.DB
	adminUsername string
	adminEmail    string
	adminPassword string
}

// NewSeeder creates a new seeder; the admin credentials come from SEED_ADMIN_* env vars
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:            db,
		adminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		adminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@sacco.local"),
		adminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123456"),
	}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	slog.Info("🌱 Running database seeders")

	if err := s.seedAdminUser(); err != nil {
		return err
	}
	if err := s.seedSettings(); err != nil {
		return err
	}

	slog.Info("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the first admin when none exists.
// In production, rotate the password right after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash(s.adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:  s.adminUsername,
		Email:     s.adminEmail,
		Password:  hashedPassword,
		FirstName: "System",
		LastName:  "Administrator",
		Role:      string(domain.RoleAdmin),
		IsActive:  true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	slog.Info("✅ Admin user created", "username", admin.Username)
	return nil
}

// seedSettings inserts baseline settings without touching existing keys
func (s *Seeder) seedSettings() error {
	defaults := []models.SystemSetting{
		{Key: "sacco_name", Value: "SACCO", SettingType: string(domain.SettingTypeGeneral), IsActive: true},
		{Key: "default_savings_interest_rate", Value: "5.00", SettingType: string(domain.SettingTypeFinancial), IsActive: true},
		{Key: "share_value", Value: "100.00", SettingType: string(domain.SettingTypeFinancial), IsActive: true},
	}
	for i := range defaults {
		err := s.db.Where("setting_key = ?", defaults[i].Key).FirstOrCreate(&defaults[i]).Error
		if err != nil {
			return err
		}
	}
	return nil
}
