package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/pkg/money"
	"gorm.io/gorm"
)

// Bill is a finalized invoice. It is written exactly once at checkout
// and never mutated afterwards; lines and totals are a snapshot of the
// billing session at save time, not references into the catalog.
type Bill struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillNo          string         `gorm:"size:100;unique;not null" json:"bill_no"`
	CustomerName    string         `gorm:"size:255;not null" json:"customer_name"`
	CashierName     string         `gorm:"size:255" json:"cashier_name,omitempty"`
	City            string         `gorm:"size:255" json:"city,omitempty"`
	SubTotalCents   int64          `gorm:"not null" json:"-"` // Stored in paise
	RoundOffCents   int64          `gorm:"not null" json:"-"` // Signed, brings total to a whole rupee
	GrandTotalCents int64          `gorm:"not null" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"-"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Lines []BillLine `gorm:"foreignKey:BillID" json:"lines,omitempty"`
}

// MarshalJSON converts stored paise to decimals for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		SubTotal   float64 `json:"subtotal"`
		RoundOff   float64 `json:"round_off"`
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(b),
		SubTotal:   money.ToDecimal(b.SubTotalCents),
		RoundOff:   money.ToDecimal(b.RoundOffCents),
		GrandTotal: money.ToDecimal(b.GrandTotalCents),
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillLine is one realized line on a saved bill. ItemName and rate are
// copied at save time so later catalog edits never rewrite history.
type BillLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID         uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	ItemName       string    `gorm:"size:255;not null" json:"item_name"`
	VariantName    string    `gorm:"size:255" json:"variant_name,omitempty"`
	RateCents      int64     `gorm:"not null" json:"-"`
	Quantity       float64   `gorm:"not null" json:"quantity"` // Fractional allowed (loose goods by weight)
	RateOverridden bool      `gorm:"default:false" json:"rate_overridden"`
	AmountCents    int64     `gorm:"not null" json:"-"`
	CreatedAt      time.Time `json:"-"`
}

// MarshalJSON converts stored paise to decimals for API responses
func (l BillLine) MarshalJSON() ([]byte, error) {
	type Alias BillLine
	return json.Marshal(&struct {
		Alias
		Rate   float64 `json:"rate"`
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(l),
		Rate:   money.ToDecimal(l.RateCents),
		Amount: money.ToDecimal(l.AmountCents),
	})
}

// BeforeCreate generates a UUID before creating a new bill line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// DisplayName returns the line's item name with the variant appended,
// e.g. `Sugar (1kg pack)`.
func (l *BillLine) DisplayName() string {
	if l.VariantName == "" {
		return l.ItemName
	}
	return l.ItemName + " (" + l.VariantName + ")"
}
