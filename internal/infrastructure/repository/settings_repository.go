package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	domainRepo "github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// ErrSettingsMissing indicates the singleton settings row was never
// seeded.
var ErrSettingsMissing = errors.New("store settings not initialized")

// Get retrieves the singleton store settings row
func (r *settingsRepository) Get(ctx context.Context) (*entity.StoreSettings, error) {
	var settings entity.StoreSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSettingsMissing
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save persists the store settings
func (r *settingsRepository) Save(ctx context.Context, settings *entity.StoreSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func dateCompact(today string) string {
	return strings.ReplaceAll(today, "-", "")
}

// MintBillNo assigns the next bill number under a row lock, resetting
// the counter to initial on the first bill of a new day. Concurrent
// checkouts serialize here, so numbers never repeat.
func (r *settingsRepository) MintBillNo(ctx context.Context, today string, initial int) (string, error) {
	var billNo string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var settings entity.StoreSettings
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&settings).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSettingsMissing
			}
			return err
		}

		if settings.LastBillDate != today {
			settings.BillCounter = initial
			settings.LastBillDate = today
		}

		billNo = utils.FormatBillNo(settings.BillPrefix, dateCompact(today), settings.BillCounter)
		settings.BillCounter++
		return tx.Save(&settings).Error
	})
	return billNo, err
}

// PeekBillNo reports the number the next bill would get, without
// advancing the counter.
func (r *settingsRepository) PeekBillNo(ctx context.Context, today string, initial int) (string, error) {
	settings, err := r.Get(ctx)
	if err != nil {
		return "", err
	}

	counter := settings.BillCounter
	if settings.LastBillDate != today {
		counter = initial
	}
	return utils.FormatBillNo(settings.BillPrefix, dateCompact(today), counter), nil
}
