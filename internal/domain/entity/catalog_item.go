package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/pkg/money"
	"gorm.io/gorm"
)

// CatalogItem represents one sellable item in the store catalog. The
// item name is the natural key: unique case-insensitively across the
// catalog, and the key billing lines reference.
type CatalogItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	NameKey   string         `gorm:"size:255;uniqueIndex;not null" json:"-"` // lower-cased name, enforces case-insensitive uniqueness
	RateCents int64          `gorm:"not null" json:"-"`                      // Stored in paise
	Position  int            `gorm:"default:1" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variants []ItemVariant `gorm:"foreignKey:ItemID" json:"variants,omitempty"`
}

// NameKeyOf normalizes an item name for case-insensitive comparison.
func NameKeyOf(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BeforeSave keeps the normalized name key in sync with the name.
func (i *CatalogItem) BeforeSave(tx *gorm.DB) error {
	i.NameKey = NameKeyOf(i.Name)
	return nil
}

// BeforeCreate generates a UUID before creating a new catalog item
func (i *CatalogItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// GetRateDecimal returns the base rate as a decimal (for display)
func (i *CatalogItem) GetRateDecimal() float64 {
	return money.ToDecimal(i.RateCents)
}

// SetRateFromDecimal sets the base rate from a decimal value
func (i *CatalogItem) SetRateFromDecimal(rate float64) {
	i.RateCents = money.ToCents(rate)
}

// VariantRate returns the rate for the named variant, or false if the
// item has no variant with that name.
func (i *CatalogItem) VariantRate(variantName string) (int64, bool) {
	for _, v := range i.Variants {
		if strings.EqualFold(v.Name, variantName) {
			return v.RateCents, true
		}
	}
	return 0, false
}

// MarshalJSON converts CatalogItem to JSON with a decimal rate
func (i CatalogItem) MarshalJSON() ([]byte, error) {
	type Alias CatalogItem
	return json.Marshal(&struct {
		Alias
		Rate float64 `json:"rate"`
	}{
		Alias: Alias(i),
		Rate:  i.GetRateDecimal(),
	})
}

// ItemVariant is a named alternative rate for a catalog item, e.g. a
// size or quality grade. Variant names are unique within their item.
type ItemVariant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index" json:"item_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	RateCents int64     `gorm:"not null" json:"-"` // Stored in paise
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new variant
func (v *ItemVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ItemVariant model
func (ItemVariant) TableName() string {
	return "item_variants"
}

// MarshalJSON converts ItemVariant to JSON with a decimal rate
func (v ItemVariant) MarshalJSON() ([]byte, error) {
	type Alias ItemVariant
	return json.Marshal(&struct {
		Alias
		Rate float64 `json:"rate"`
	}{
		Alias: Alias(v),
		Rate:  money.ToDecimal(v.RateCents),
	})
}
