package service

import (
	"context"
	"strings"
	"testing"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/omkarj/kirana-billing-api/pkg/apperror"
	"github.com/omkarj/kirana-billing-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBillingService(t *testing.T) (*BillingService, *memCatalogRepo, *memBillRepo, *memSettingsRepo) {
	t.Helper()

	catalogRepo := newMemCatalogRepo()
	seed := []struct {
		name string
		rate float64
		pos  int
	}{
		{"Sugar", 45.00, 1},
		{"Rice", 60.00, 2},
		{"Oil", 180.00, 3},
	}
	for _, s := range seed {
		item := &entity.CatalogItem{Name: s.name, Position: s.pos}
		item.SetRateFromDecimal(s.rate)
		require.NoError(t, catalogRepo.Create(context.Background(), item))
	}

	settingsRepo := newMemSettingsRepo(&entity.StoreSettings{
		StoreName:  "Mangalmurti Traders",
		City:       "Pathardi",
		BillPrefix: "DWL",
	})
	billRepo := newMemBillRepo()

	svc := NewBillingService(catalogRepo, billRepo, settingsRepo, nil, 5000)
	return svc, catalogRepo, billRepo, settingsRepo
}

func TestCheckout(t *testing.T) {
	svc, _, billRepo, _ := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2"})
	require.NoError(t, err)

	bill, err := svc.Checkout(ctx, &CheckoutInput{CustomerName: "Ramesh", CashierName: "Omkar"})
	require.NoError(t, err)

	assert.Equal(t, "Ramesh", bill.CustomerName)
	assert.Equal(t, "Omkar", bill.CashierName)
	assert.Equal(t, "Pathardi", bill.City)
	assert.Equal(t, int64(9000), bill.SubTotalCents)
	assert.Zero(t, bill.RoundOffCents)
	assert.Equal(t, int64(9000), bill.GrandTotalCents)
	require.Len(t, bill.Lines, 1)
	assert.Equal(t, "Sugar", bill.Lines[0].ItemName)
	assert.Equal(t, float64(2), bill.Lines[0].Quantity)

	// First bill of the day takes the initial number.
	assert.True(t, strings.HasPrefix(bill.BillNo, "DWL-"))
	assert.True(t, strings.HasSuffix(bill.BillNo, "-5000"))

	// Checkout clears the session for the next customer.
	view := svc.GetSession(ctx)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.GrandTotal)

	assert.Len(t, billRepo.bills, 1)
}

func TestCheckoutSequentialBillNumbers(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	for i, want := range []string{"-5000", "-5001", "-5002"} {
		_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Rice", Quantity: "1"})
		require.NoError(t, err)

		bill, err := svc.Checkout(ctx, &CheckoutInput{CustomerName: "Walk-in"})
		require.NoError(t, err, "bill %d", i)
		assert.True(t, strings.HasSuffix(bill.BillNo, want), "bill %d got %s", i, bill.BillNo)
	}
}

func TestCheckoutRequiresCustomerName(t *testing.T) {
	svc, _, billRepo, _ := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2"})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, &CheckoutInput{CustomerName: "   "})
	assert.Equal(t, apperror.ErrMissingCustomerName, err)

	// A rejected checkout leaves the session intact.
	view := svc.GetSession(ctx)
	assert.Len(t, view.Lines, 1)
	assert.Empty(t, billRepo.bills)
}

func TestCheckoutEmptySale(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)

	_, err := svc.Checkout(context.Background(), &CheckoutInput{CustomerName: "Ramesh"})
	assert.Equal(t, apperror.ErrEmptySale, err)
}

func TestCheckoutStorageFailureLeavesSession(t *testing.T) {
	svc, _, billRepo, _ := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2"})
	require.NoError(t, err)

	billRepo.failCreate = true
	_, err = svc.Checkout(ctx, &CheckoutInput{CustomerName: "Ramesh"})
	assert.Error(t, err)

	// The cashier can retry without re-entering the bill.
	view := svc.GetSession(ctx)
	assert.Len(t, view.Lines, 1)

	billRepo.failCreate = false
	_, err = svc.Checkout(ctx, &CheckoutInput{CustomerName: "Ramesh"})
	require.NoError(t, err)
	assert.Empty(t, svc.GetSession(ctx).Lines)
}

func TestCheckoutWithOverriddenRateKeepsCatalog(t *testing.T) {
	svc, catalogRepo, _, _ := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "3"})
	require.NoError(t, err)
	_, err = svc.SetRate(ctx, &SetRateInput{ItemName: "Sugar", Rate: "50"})
	require.NoError(t, err)

	bill, err := svc.Checkout(ctx, &CheckoutInput{CustomerName: "Ramesh"})
	require.NoError(t, err)

	require.Len(t, bill.Lines, 1)
	assert.Equal(t, int64(5000), bill.Lines[0].RateCents)
	assert.True(t, bill.Lines[0].RateOverridden)
	assert.Equal(t, int64(15000), bill.SubTotalCents)

	// The catalog still carries the original rate.
	item, err := catalogRepo.GetByName(ctx, "Sugar")
	require.NoError(t, err)
	assert.Equal(t, int64(4500), item.RateCents)
}

func TestCheckoutLinesSorted(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	for _, name := range []string{"Sugar", "Oil", "Rice"} {
		_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: name, Quantity: "1"})
		require.NoError(t, err)
	}

	bill, err := svc.Checkout(ctx, &CheckoutInput{CustomerName: "Ramesh"})
	require.NoError(t, err)

	require.Len(t, bill.Lines, 3)
	assert.Equal(t, "Oil", bill.Lines[0].ItemName)
	assert.Equal(t, "Rice", bill.Lines[1].ItemName)
	assert.Equal(t, "Sugar", bill.Lines[2].ItemName)
}

func TestSelectQuantityAdvisoryFlag(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	view, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "abc"})
	require.NoError(t, err)
	assert.True(t, view.ParsedAsZero)
	assert.Empty(t, view.Lines)

	view, err = svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2"})
	require.NoError(t, err)
	assert.False(t, view.ParsedAsZero)
	assert.Len(t, view.Lines, 1)
}

func TestSelectQuantityUnknownItemFails(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)

	_, err := svc.SelectQuantity(context.Background(), &SelectQuantityInput{ItemName: "Ghost", Quantity: "1"})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSessionViewTotals(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	// 2.5 kg Sugar = 112.50, rounds to 113.00
	view, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2.5"})
	require.NoError(t, err)

	assert.Equal(t, 112.50, view.SubTotal)
	assert.Equal(t, 0.50, view.RoundOff)
	assert.Equal(t, 113.00, view.GrandTotal)
	assert.NotEmpty(t, view.NextBillNo)
}

func TestReset(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Sugar", Quantity: "2"})
	require.NoError(t, err)

	view := svc.Reset(ctx)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.SubTotal)
}

func TestNextBillNoDoesNotAdvance(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	first, err := svc.NextBillNo(ctx)
	require.NoError(t, err)
	second, err := svc.NextBillNo(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-5000"))
}

func TestListBills(t *testing.T) {
	svc, _, _, _ := newTestBillingService(t)
	ctx := context.Background()

	for _, customer := range []string{"First", "Second"} {
		_, err := svc.SelectQuantity(ctx, &SelectQuantityInput{ItemName: "Rice", Quantity: "1"})
		require.NoError(t, err)
		_, err = svc.Checkout(ctx, &CheckoutInput{CustomerName: customer})
		require.NoError(t, err)
	}

	params := pagination.DefaultPagination()
	result, err := svc.ListBills(ctx, params)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Pagination.Total)
	require.Len(t, result.Items, 2)
	// Newest first.
	assert.Equal(t, "Second", result.Items[0].CustomerName)
}
