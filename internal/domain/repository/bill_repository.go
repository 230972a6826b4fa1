package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/pkg/pagination"
)

// BillRepository defines the interface for saved bill operations.
// Bills are write-once: there is no update or delete.
type BillRepository interface {
	// Create persists a bill together with its lines.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Bill, int64, error)
}

// SettingsRepository manages the singleton store settings row, which
// also carries the per-day bill counter.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Save(ctx context.Context, settings *entity.StoreSettings) error
	// MintBillNo returns the next bill number and advances the counter,
	// resetting it to initial when today differs from the last bill
	// date. today is a calendar date formatted as 2006-01-02.
	MintBillNo(ctx context.Context, today string, initial int) (string, error)
	// PeekBillNo returns the number the next bill will get without
	// advancing the counter (shown on the bill header while editing).
	PeekBillNo(ctx context.Context, today string, initial int) (string, error)
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
