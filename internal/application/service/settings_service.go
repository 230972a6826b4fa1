package service

import (
	"context"
	"strings"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/pkg/apperror"
)

// SettingsService handles store settings operations
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings retrieves the store settings
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the update settings input. Nil fields
// are left unchanged. The bill counter and last bill date are managed
// by checkout and cannot be edited here.
type UpdateSettingsInput struct {
	StoreName    *string
	StoreAddress *string
	City         *string
	BillPrefix   *string
}

// UpdateSettings updates the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.StoreName != nil {
		name := strings.TrimSpace(*input.StoreName)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "store_name", Message: "Store name is required"},
			})
		}
		settings.StoreName = name
	}
	if input.StoreAddress != nil {
		settings.StoreAddress = strings.TrimSpace(*input.StoreAddress)
	}
	if input.City != nil {
		settings.City = strings.TrimSpace(*input.City)
	}
	if input.BillPrefix != nil {
		prefix := strings.TrimSpace(*input.BillPrefix)
		if prefix == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "bill_prefix", Message: "Bill prefix is required"},
			})
		}
		settings.BillPrefix = prefix
	}

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return s.settingsRepo.Get(ctx)
}
