package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
)

// CatalogRepository defines the interface for catalog data operations.
// List order is the display order: position ascending, ties broken by
// insertion order, and must be deterministic for identical data.
type CatalogRepository interface {
	Create(ctx context.Context, item *entity.CatalogItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error)
	// GetByName looks an item up by its natural key, case-insensitively.
	GetByName(ctx context.Context, name string) (*entity.CatalogItem, error)
	Update(ctx context.Context, item *entity.CatalogItem) error
	// ReplaceVariants swaps an item's variant list wholesale.
	ReplaceVariants(ctx context.Context, itemID uuid.UUID, variants []entity.ItemVariant) error
	// Delete removes an item and its variants. Deleting an absent ID is
	// a no-op, not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.CatalogItem, error)
}
