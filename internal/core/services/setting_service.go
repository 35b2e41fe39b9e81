package services

import (
	"context"
	"fmt"

	"sacco-admin/internal/adapters/persistence/models"
	"sacco-admin/internal/adapters/persistence/repositories"
	"sacco-admin/internal/core/domain"
)

// Setting errors
var (
	ErrSettingNotFound = &domain.NotFoundError{Resource: "setting"}
	ErrSettingKeyTaken = fmt.Errorf("setting key already exists: %w", domain.ErrDuplicateEntry)
)

// SettingService manages runtime system settings
type SettingService struct {
	store *repositories.Store
}

func NewSettingService(store *repositories.Store) *SettingService {
	return &SettingService{store: store}
}

// SettingInput represents create/update setting input
type SettingInput struct {
	Key         *string `json:"key"`
	Value       *string `json:"value"`
	SettingType *string `json:"setting_type"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func validSettingType(t string) bool {
	switch domain.SettingType(t) {
	case domain.SettingTypeGeneral, domain.SettingTypeFinancial, domain.SettingTypeEmail, domain.SettingTypeSecurity:
		return true
	}
	return false
}

func (s *SettingService) Create(ctx context.Context, input *SettingInput) (*models.SystemSetting, error) {
	setting := &models.SystemSetting{SettingType: string(domain.SettingTypeGeneral), IsActive: true}
	if err := s.apply(ctx, setting, input); err != nil {
		return nil, err
	}
	if err := required("key", setting.Key); err != nil {
		return nil, err
	}
	if input.Value == nil {
		return nil, domain.Invalid("value", "is required")
	}
	if err := s.store.Settings.Create(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) Get(ctx context.Context, id uint) (*models.SystemSetting, error) {
	setting, err := s.store.Settings.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrSettingNotFound)
	}
	return setting, nil
}

// GetByKey looks a setting up by its unique key
func (s *SettingService) GetByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	setting, err := s.store.Settings.GetByKey(ctx, key)
	if err != nil {
		return nil, notFound(err, ErrSettingNotFound)
	}
	return setting, nil
}

func (s *SettingService) List(ctx context.Context, settingType string) ([]*models.SystemSetting, error) {
	return s.store.Settings.List(ctx, settingType)
}

func (s *SettingService) Update(ctx context.Context, id uint, input *SettingInput) (*models.SystemSetting, error) {
	setting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, setting, input); err != nil {
		return nil, err
	}
	if err := s.store.Settings.Update(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) Delete(ctx context.Context, id uint) error {
	return notFound(s.store.Settings.Delete(ctx, id), ErrSettingNotFound)
}

func (s *SettingService) apply(ctx context.Context, setting *models.SystemSetting, input *SettingInput) error {
	if input.Key != nil && *input.Key != setting.Key {
		exists, err := s.store.Settings.ExistsByKey(ctx, *input.Key)
		if err != nil {
			return err
		}
		if exists {
			return ErrSettingKeyTaken
		}
		setting.Key = *input.Key
	}
	if input.SettingType != nil {
		if !validSettingType(*input.SettingType) {
			return domain.Invalid("setting_type", "must be general, financial, email or security")
		}
		setting.SettingType = *input.SettingType
	}
	if input.Value != nil {
		setting.Value = *input.Value
	}
	if input.Description != nil {
		setting.Description = input.Description
	}
	if input.IsActive != nil {
		setting.IsActive = *input.IsActive
	}
	return nil
}
