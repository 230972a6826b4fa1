package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/internal/domain/repository"
	"github.com/omkarj/kirana-billing-api/pkg/apperror"
	"github.com/omkarj/kirana-billing-api/pkg/money"
	"github.com/omkarj/kirana-billing-api/pkg/pagination"
)

// catalogRates adapts the catalog repository to the session's
// RateResolver. Lookups go to the repository on every call so the
// session always sees the current rate.
type catalogRates struct {
	repo repository.CatalogRepository
}

func (r *catalogRates) ResolveRate(ctx context.Context, itemName, variantName string) (int64, error) {
	item, err := r.repo.GetByName(ctx, itemName)
	if err != nil {
		return 0, err
	}
	if item == nil {
		return 0, apperror.NewNotFoundError("Item")
	}
	if strings.TrimSpace(variantName) == "" {
		return item.RateCents, nil
	}
	rate, ok := item.VariantRate(variantName)
	if !ok {
		return 0, apperror.NewNotFoundError("Variant")
	}
	return rate, nil
}

// BillingService owns the single billing session of the counter
// terminal and turns it into saved bills at checkout. All session
// access is serialized through the service mutex.
type BillingService struct {
	mu           sync.Mutex
	session      *Session
	rates        *catalogRates
	billRepo     repository.BillRepository
	settingsRepo repository.SettingsRepository
	printerSvc   *PrinterService

	initialBillNo int
}

// NewBillingService creates a new billing service
func NewBillingService(
	catalogRepo repository.CatalogRepository,
	billRepo repository.BillRepository,
	settingsRepo repository.SettingsRepository,
	printerSvc *PrinterService,
	initialBillNo int,
) *BillingService {
	return &BillingService{
		session:       NewSession(),
		rates:         &catalogRates{repo: catalogRepo},
		billRepo:      billRepo,
		settingsRepo:  settingsRepo,
		printerSvc:    printerSvc,
		initialBillNo: initialBillNo,
	}
}

// SessionLineView is one selected line as shown on the counter screen.
type SessionLineView struct {
	ItemName       string  `json:"item_name"`
	VariantName    string  `json:"variant_name,omitempty"`
	Quantity       float64 `json:"quantity"`
	Rate           float64 `json:"rate"`
	RateOverridden bool    `json:"rate_overridden,omitempty"`
	Amount         float64 `json:"amount"`
}

// SessionView is the session state projection returned after every
// session operation: the selected lines in display order plus the
// freshly recomputed totals.
type SessionView struct {
	Lines        []SessionLineView `json:"lines"`
	SubTotal     float64           `json:"subtotal"`
	RoundOff     float64           `json:"round_off"`
	GrandTotal   float64           `json:"grand_total"`
	NextBillNo   string            `json:"next_bill_no,omitempty"`
	ParsedAsZero bool              `json:"parsed_as_zero,omitempty"`
}

// view projects the session; callers must hold s.mu.
func (s *BillingService) view(ctx context.Context) *SessionView {
	selections := s.session.Selections()
	lines := make([]SessionLineView, 0, len(selections))
	for _, sel := range selections {
		lines = append(lines, SessionLineView{
			ItemName:       sel.ItemName,
			VariantName:    sel.VariantName,
			Quantity:       sel.Quantity,
			Rate:           money.ToDecimal(sel.RateCents),
			RateOverridden: sel.RateOverridden,
			Amount:         money.ToDecimal(money.LineAmount(sel.Quantity, sel.RateCents)),
		})
	}

	subtotal, roundOff, grand := s.session.Totals()
	v := &SessionView{
		Lines:      lines,
		SubTotal:   money.ToDecimal(subtotal),
		RoundOff:   money.ToDecimal(roundOff),
		GrandTotal: money.ToDecimal(grand),
	}

	if billNo, err := s.settingsRepo.PeekBillNo(ctx, today(), s.initialBillNo); err == nil {
		v.NextBillNo = billNo
	}
	return v
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// GetSession returns the current session state.
func (s *BillingService) GetSession(ctx context.Context) *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(ctx)
}

// SelectQuantityInput carries the raw quantity (and optional rate)
// entry for one line. Quantity and Rate arrive as the raw strings
// typed at the counter; parsing leniency lives in the session.
type SelectQuantityInput struct {
	ItemName    string
	VariantName string
	Quantity    string
	Rate        string
}

// SelectQuantity sets the quantity for a line and returns the updated
// session state.
func (s *BillingService) SelectQuantity(ctx context.Context, input *SelectQuantityInput) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	coerced, err := s.session.SelectQuantity(ctx, s.rates, input.ItemName, input.VariantName, input.Quantity, input.Rate)
	if err != nil {
		return nil, err
	}

	v := s.view(ctx)
	v.ParsedAsZero = coerced
	return v, nil
}

// SetRateInput carries a raw rate entry for one line.
type SetRateInput struct {
	ItemName    string
	VariantName string
	Rate        string
}

// SetRate applies a session-local rate override for a line. The
// catalog rate is never changed. Invalid rate input is ignored and the
// unchanged state returned.
func (s *BillingService) SetRate(ctx context.Context, input *SetRateInput) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.SetRateOverride(input.ItemName, input.VariantName, input.Rate)
	return s.view(ctx), nil
}

// Reset discards every selection and override, starting a fresh bill.
func (s *BillingService) Reset(ctx context.Context) *SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.ClearAll()
	return s.view(ctx)
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	CustomerName string
	CashierName  string
}

// Checkout finalizes the session into an immutable bill: validates the
// customer name and non-empty sale, mints the next bill number,
// persists the bill with its lines and recomputed totals, then clears
// the session. Any failure leaves the session untouched so the cashier
// can retry. Printing is fire-and-forget; a printer fault never voids
// a saved bill.
func (s *BillingService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, apperror.ErrMissingCustomerName
	}
	if s.session.Empty() {
		return nil, apperror.ErrEmptySale
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	billNo, err := s.settingsRepo.MintBillNo(ctx, today(), s.initialBillNo)
	if err != nil {
		return nil, err
	}

	subtotal, roundOff, grand := s.session.Totals()
	selections := s.session.Selections()
	lines := make([]entity.BillLine, 0, len(selections))
	for _, sel := range selections {
		lines = append(lines, entity.BillLine{
			ItemName:       sel.ItemName,
			VariantName:    sel.VariantName,
			RateCents:      sel.RateCents,
			Quantity:       sel.Quantity,
			RateOverridden: sel.RateOverridden,
			AmountCents:    money.LineAmount(sel.Quantity, sel.RateCents),
		})
	}

	bill := &entity.Bill{
		BillNo:          billNo,
		CustomerName:    customer,
		CashierName:     strings.TrimSpace(input.CashierName),
		City:            settings.City,
		SubTotalCents:   subtotal,
		RoundOffCents:   roundOff,
		GrandTotalCents: grand,
		Lines:           lines,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	s.session.ClearAll()

	if s.printerSvc != nil {
		go func(b entity.Bill) {
			if _, err := s.printerSvc.PrintBill(context.Background(), &b); err != nil {
				log.Printf("Receipt print failed (bill %s): %v", b.BillNo, err)
			}
		}(*bill)
	}

	return s.billRepo.GetByID(ctx, bill.ID)
}

// NextBillNo returns the number the next bill will receive without
// consuming it.
func (s *BillingService) NextBillNo(ctx context.Context) (string, error) {
	return s.settingsRepo.PeekBillNo(ctx, today(), s.initialBillNo)
}

// GetBill retrieves a saved bill by ID
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// GetBillByNo retrieves a saved bill by its bill number
func (s *BillingService) GetBillByNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists saved bills newest first, paginated.
func (s *BillingService) ListBills(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}
