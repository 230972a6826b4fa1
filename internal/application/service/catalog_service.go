package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/pkg/apperror"
	"github.com/omkarj/kirana-billing-api/pkg/money"
	"github.com/xuri/excelize/v2"
)

// CatalogChangeListener receives the full catalog after every mutation.
// Listeners run on their own goroutine and must not block on shared
// service state.
type CatalogChangeListener func(items []entity.CatalogItem)

// CatalogService handles catalog item operations and fans out change
// notifications to subscribed listeners (e.g. the remote mirror).
type CatalogService struct {
	catalogRepo repository.CatalogRepository

	mu        sync.RWMutex
	listeners []CatalogChangeListener
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// Subscribe registers a listener invoked after every catalog mutation.
func (s *CatalogService) Subscribe(fn CatalogChangeListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// notifyChanged snapshots the catalog and dispatches it to listeners.
// Failures here are advisory: the local mutation already succeeded.
func (s *CatalogService) notifyChanged(ctx context.Context) {
	s.mu.RLock()
	n := len(s.listeners)
	s.mu.RUnlock()
	if n == 0 {
		return
	}

	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		log.Printf("Catalog notify: listing items failed: %v", err)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fn := range s.listeners {
		go fn(items)
	}
}

// VariantInput represents one variant in a create or update request.
type VariantInput struct {
	Name string
	Rate float64
}

// AddItemInput represents the add item input
type AddItemInput struct {
	Name     string
	Rate     float64
	Position int
	Variants []VariantInput
}

func buildVariants(inputs []VariantInput) ([]entity.ItemVariant, error) {
	seen := make(map[string]bool)
	variants := make([]entity.ItemVariant, 0, len(inputs))
	for i, v := range inputs {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "variants", Message: "Variant name is required"},
			})
		}
		key := entity.NameKeyOf(name)
		if seen[key] {
			return nil, apperror.NewConflictError(fmt.Sprintf("Duplicate variant '%s'", name))
		}
		seen[key] = true
		if v.Rate < 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "variants", Message: "Variant rate cannot be negative"},
			})
		}
		variants = append(variants, entity.ItemVariant{
			Name:      name,
			RateCents: money.ToCents(v.Rate),
			SortOrder: i,
		})
	}
	return variants, nil
}

// AddItem adds a new item to the catalog. The name must be unique
// case-insensitively and the base rate strictly positive; validation
// runs before any write, so a failed add leaves the catalog untouched.
func (s *CatalogService) AddItem(ctx context.Context, input *AddItemInput) (*entity.CatalogItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Item name is required"},
		})
	}
	if input.Rate <= 0 {
		return nil, apperror.ErrInvalidRate
	}

	existing, err := s.catalogRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrDuplicateName
	}

	variants, err := buildVariants(input.Variants)
	if err != nil {
		return nil, err
	}

	item := &entity.CatalogItem{
		Name:     name,
		Position: input.Position,
		Variants: variants,
	}
	item.SetRateFromDecimal(input.Rate)

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.notifyChanged(ctx)
	return s.catalogRepo.GetByID(ctx, item.ID)
}

// UpdateItemInput represents the update item input. Nil fields are
// left unchanged; a non-nil Variants replaces the variant list
// wholesale.
type UpdateItemInput struct {
	ID       uuid.UUID
	Name     *string
	Rate     *float64
	Position *int
	Variants *[]VariantInput
}

// UpdateItem updates an existing catalog item
func (s *CatalogService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "name", Message: "Item name is required"},
			})
		}
		if entity.NameKeyOf(name) != item.NameKey {
			existing, err := s.catalogRepo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != item.ID {
				return nil, apperror.ErrDuplicateName
			}
		}
		item.Name = name
	}
	if input.Rate != nil {
		if *input.Rate <= 0 {
			return nil, apperror.ErrInvalidRate
		}
		item.SetRateFromDecimal(*input.Rate)
	}
	if input.Position != nil {
		item.Position = *input.Position
	}

	var newVariants []entity.ItemVariant
	if input.Variants != nil {
		newVariants, err = buildVariants(*input.Variants)
		if err != nil {
			return nil, err
		}
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	if input.Variants != nil {
		if err := s.catalogRepo.ReplaceVariants(ctx, item.ID, newVariants); err != nil {
			return nil, err
		}
	}

	s.notifyChanged(ctx)
	return s.catalogRepo.GetByID(ctx, item.ID)
}

// DeleteItem removes an item from the catalog. Deleting an item that
// does not exist is a no-op.
func (s *CatalogService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyChanged(ctx)
	return nil
}

// GetItem retrieves a catalog item by ID
func (s *CatalogService) GetItem(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems returns the catalog in display order.
func (s *CatalogService) ListItems(ctx context.Context) ([]entity.CatalogItem, error) {
	return s.catalogRepo.List(ctx)
}

// Columns splits the catalog in display order into n contiguous
// columns for the counter screen. Earlier columns take the extra item
// when the count does not divide evenly.
func (s *CatalogService) Columns(ctx context.Context, n int) ([][]entity.CatalogItem, error) {
	if n < 1 {
		n = 1
	}
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	columns := make([][]entity.CatalogItem, n)
	base := len(items) / n
	extra := len(items) % n
	idx := 0
	for c := 0; c < n; c++ {
		size := base
		if c < extra {
			size++
		}
		columns[c] = items[idx : idx+size]
		idx += size
	}
	return columns, nil
}

// ExportXLSX renders the catalog as an Excel workbook, one row per
// item with variants flattened underneath.
func (s *CatalogService) ExportXLSX(ctx context.Context) ([]byte, error) {
	items, err := s.catalogRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Catalog"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Position", "Name", "Variant", "Rate"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	writeRow := func(position interface{}, name, variant string, rate float64) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), position)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), variant)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rate)
		row++
	}

	for _, item := range items {
		writeRow(item.Position, item.Name, "", item.GetRateDecimal())
		for _, v := range item.Variants {
			writeRow("", item.Name, v.Name, money.ToDecimal(v.RateCents))
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperror.NewAppError(500, "Failed to generate export: "+err.Error())
	}
	return buf.Bytes(), nil
}
