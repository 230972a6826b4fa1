package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/pkg/pagination"
	"github.com/omkarj/kirana-billing-api/pkg/utils"
)

// memCatalogRepo is an in-memory CatalogRepository for service tests.
type memCatalogRepo struct {
	items []*entity.CatalogItem
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{}
}

func (r *memCatalogRepo) Create(ctx context.Context, item *entity.CatalogItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.NameKey = entity.NameKeyOf(item.Name)
	for i := range item.Variants {
		if item.Variants[i].ID == uuid.Nil {
			item.Variants[i].ID = uuid.New()
		}
		item.Variants[i].ItemID = item.ID
	}
	r.items = append(r.items, item)
	return nil
}

func (r *memCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.CatalogItem, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memCatalogRepo) GetByName(ctx context.Context, name string) (*entity.CatalogItem, error) {
	key := entity.NameKeyOf(name)
	for _, it := range r.items {
		if it.NameKey == key {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memCatalogRepo) Update(ctx context.Context, item *entity.CatalogItem) error {
	item.NameKey = entity.NameKeyOf(item.Name)
	for i, it := range r.items {
		if it.ID == item.ID {
			r.items[i] = item
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memCatalogRepo) ReplaceVariants(ctx context.Context, itemID uuid.UUID, variants []entity.ItemVariant) error {
	for _, it := range r.items {
		if it.ID == itemID {
			for i := range variants {
				if variants[i].ID == uuid.Nil {
					variants[i].ID = uuid.New()
				}
				variants[i].ItemID = itemID
			}
			it.Variants = variants
			return nil
		}
	}
	return errors.New("not found")
}

func (r *memCatalogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memCatalogRepo) List(ctx context.Context) ([]entity.CatalogItem, error) {
	out := make([]entity.CatalogItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, *it)
	}
	// Position ascending, insertion order preserved on ties.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

// memSettingsRepo is an in-memory SettingsRepository with the same
// per-day counter behavior as the database implementation.
type memSettingsRepo struct {
	settings *entity.StoreSettings
}

func newMemSettingsRepo(settings *entity.StoreSettings) *memSettingsRepo {
	return &memSettingsRepo{settings: settings}
}

func (r *memSettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	cp := *r.settings
	return &cp, nil
}

func (r *memSettingsRepo) Save(ctx context.Context, settings *entity.StoreSettings) error {
	cp := *settings
	r.settings = &cp
	return nil
}

func (r *memSettingsRepo) MintBillNo(ctx context.Context, today string, initial int) (string, error) {
	if r.settings.LastBillDate != today {
		r.settings.BillCounter = initial
		r.settings.LastBillDate = today
	}
	n := r.settings.BillCounter
	r.settings.BillCounter++
	return utils.FormatBillNo(r.settings.BillPrefix, strings.ReplaceAll(today, "-", ""), n), nil
}

func (r *memSettingsRepo) PeekBillNo(ctx context.Context, today string, initial int) (string, error) {
	n := r.settings.BillCounter
	if r.settings.LastBillDate != today {
		n = initial
	}
	return utils.FormatBillNo(r.settings.BillPrefix, strings.ReplaceAll(today, "-", ""), n), nil
}

// memBillRepo is an in-memory BillRepository. failCreate simulates a
// storage fault at checkout.
type memBillRepo struct {
	bills      []*entity.Bill
	failCreate bool
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{}
}

func (r *memBillRepo) Create(ctx context.Context, bill *entity.Bill) error {
	if r.failCreate {
		return errors.New("storage unavailable")
	}
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	for i := range bill.Lines {
		if bill.Lines[i].ID == uuid.Nil {
			bill.Lines[i].ID = uuid.New()
		}
		bill.Lines[i].BillID = bill.ID
	}
	r.bills = append(r.bills, bill)
	return nil
}

func (r *memBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	for _, b := range r.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBillRepo) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	for _, b := range r.bills {
		if b.BillNo == billNo {
			return b, nil
		}
	}
	return nil, nil
}

func (r *memBillRepo) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error) {
	out := make([]entity.Bill, 0, len(r.bills))
	for i := len(r.bills) - 1; i >= 0; i-- {
		out = append(out, *r.bills[i])
	}
	total := int64(len(out))
	start := params.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + params.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

// stubRates is a fixed-rate RateResolver for session tests.
type stubRates struct {
	rates map[string]int64
}

func (s *stubRates) ResolveRate(ctx context.Context, itemName, variantName string) (int64, error) {
	key := entity.NameKeyOf(itemName)
	if variantName != "" {
		key += "/" + entity.NameKeyOf(variantName)
	}
	rate, ok := s.rates[key]
	if !ok {
		return 0, errors.New("item not found")
	}
	return rate, nil
}
