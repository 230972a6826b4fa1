package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StoreSettings is a singleton row holding store metadata and the
// per-day bill counter. LastBillDate is a calendar date (2006-01-02);
// the counter resets to the configured initial number when a bill is
// minted on a later date.
type StoreSettings struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StoreName    string    `gorm:"size:255;not null" json:"store_name"`
	StoreAddress string    `gorm:"size:255" json:"store_address"`
	City         string    `gorm:"size:255" json:"city"`
	BillPrefix   string    `gorm:"size:20;default:'BILL'" json:"bill_prefix"`
	BillCounter  int       `gorm:"default:1" json:"bill_counter"`
	LastBillDate string    `gorm:"size:10" json:"last_bill_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating settings
func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StoreSettings model
func (StoreSettings) TableName() string {
	return "store_settings"
}
