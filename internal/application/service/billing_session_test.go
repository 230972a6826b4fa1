package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		raw     string
		want    float64
		coerced bool
	}{
		{"2", 2, false},
		{"2.5", 2.5, false},
		{" 3 ", 3, false},
		{"", 0, false},
		{"abc", 0, true},
		{"-3", 0, true},
		{"NaN", 0, true},
	}
	for _, c := range cases {
		got, coerced := ParseQuantity(c.raw)
		assert.Equal(t, c.want, got, "raw %q", c.raw)
		assert.Equal(t, c.coerced, coerced, "raw %q", c.raw)
	}
}

func TestParseRate(t *testing.T) {
	cents, ok := ParseRate("50")
	assert.True(t, ok)
	assert.Equal(t, int64(5000), cents)

	cents, ok = ParseRate("0")
	assert.True(t, ok)
	assert.Zero(t, cents)

	for _, raw := range []string{"", "abc", "-10"} {
		_, ok := ParseRate(raw)
		assert.False(t, ok, "raw %q", raw)
	}
}

func sugarRates() *stubRates {
	return &stubRates{rates: map[string]int64{
		"sugar": 4500,
		"rice":  6000,
		"oil":   18000,
	}}
}

func TestSelectQuantityUsesCatalogRate(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)

	subtotal, roundOff, grand := s.Totals()
	assert.Equal(t, int64(9000), subtotal)
	assert.Zero(t, roundOff)
	assert.Equal(t, int64(9000), grand)
}

func TestSelectQuantityFractional(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	// 2.5 kg at 45.00 = 112.50, rounds up to 113.00
	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2.5", "")
	require.NoError(t, err)

	subtotal, roundOff, grand := s.Totals()
	assert.Equal(t, int64(11250), subtotal)
	assert.Equal(t, int64(50), roundOff)
	assert.Equal(t, int64(11300), grand)
	assert.Zero(t, grand%100)
}

func TestSelectQuantityMalformedRemovesLine(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)
	assert.Len(t, s.Selections(), 1)

	coerced, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "abc", "")
	require.NoError(t, err)
	assert.True(t, coerced)
	assert.Empty(t, s.Selections())
	assert.True(t, s.Empty())
}

func TestSelectQuantityUnknownItem(t *testing.T) {
	s := NewSession()
	_, err := s.SelectQuantity(context.Background(), sugarRates(), "Unknown", "", "1", "")
	assert.Error(t, err)
	assert.True(t, s.Empty())
}

func TestRateOverrideOnSelectedLine(t *testing.T) {
	s := NewSession()
	ctx := context.Background()
	rates := sugarRates()

	_, err := s.SelectQuantity(ctx, rates, "Sugar", "", "3", "")
	require.NoError(t, err)

	applied := s.SetRateOverride("Sugar", "", "50")
	assert.True(t, applied)

	subtotal, _, _ := s.Totals()
	assert.Equal(t, int64(15000), subtotal)

	sel := s.Selections()[0]
	assert.True(t, sel.RateOverridden)
	assert.Equal(t, int64(5000), sel.RateCents)

	// Catalog itself is untouched.
	assert.Equal(t, int64(4500), rates.rates["sugar"])
}

func TestRateOverrideInvalidInputIgnored(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)

	applied := s.SetRateOverride("Sugar", "", "abc")
	assert.False(t, applied)

	subtotal, _, _ := s.Totals()
	assert.Equal(t, int64(9000), subtotal)
	assert.False(t, s.Selections()[0].RateOverridden)
}

func TestRateOverrideBeforeQuantity(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	// Recorded, but contributes nothing until a quantity arrives.
	applied := s.SetRateOverride("Sugar", "", "50")
	assert.True(t, applied)
	assert.True(t, s.Empty())

	cents, ok := s.PendingOverride("Sugar", "")
	assert.True(t, ok)
	assert.Equal(t, int64(5000), cents)

	subtotal, _, _ := s.Totals()
	assert.Zero(t, subtotal)

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)

	subtotal, _, _ = s.Totals()
	assert.Equal(t, int64(10000), subtotal)
	assert.True(t, s.Selections()[0].RateOverridden)
}

func TestOverrideSurvivesZeroQuantity(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)
	s.SetRateOverride("Sugar", "", "50")

	// Clearing the quantity removes the line but keeps the edited rate.
	_, err = s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "0", "")
	require.NoError(t, err)
	assert.True(t, s.Empty())

	cents, ok := s.PendingOverride("Sugar", "")
	assert.True(t, ok)
	assert.Equal(t, int64(5000), cents)

	_, err = s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), s.Selections()[0].RateCents)
}

func TestCatalogRateChangePickedUpLazily(t *testing.T) {
	s := NewSession()
	ctx := context.Background()
	rates := sugarRates()

	_, err := s.SelectQuantity(ctx, rates, "Sugar", "", "2", "")
	require.NoError(t, err)

	rates.rates["sugar"] = 4800

	// A non-overridden line re-resolves the catalog on the next edit.
	_, err = s.SelectQuantity(ctx, rates, "Sugar", "", "3", "")
	require.NoError(t, err)

	subtotal, _, _ := s.Totals()
	assert.Equal(t, int64(14400), subtotal)
}

func TestLineKeyCaseInsensitive(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)
	_, err = s.SelectQuantity(ctx, sugarRates(), "SUGAR", "", "3", "")
	require.NoError(t, err)

	require.Len(t, s.Selections(), 1)
	assert.Equal(t, float64(3), s.Selections()[0].Quantity)
}

func TestVariantsAreSeparateLines(t *testing.T) {
	s := NewSession()
	ctx := context.Background()
	rates := &stubRates{rates: map[string]int64{
		"rice/basmati": 12000,
		"rice/kolam":   6000,
	}}

	_, err := s.SelectQuantity(ctx, rates, "Rice", "Basmati", "1", "")
	require.NoError(t, err)
	_, err = s.SelectQuantity(ctx, rates, "Rice", "Kolam", "2", "")
	require.NoError(t, err)

	require.Len(t, s.Selections(), 2)
	subtotal, _, _ := s.Totals()
	assert.Equal(t, int64(24000), subtotal)
}

func TestTotalsIdempotent(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2.5", "")
	require.NoError(t, err)
	_, err = s.SelectQuantity(ctx, sugarRates(), "Oil", "", "1", "")
	require.NoError(t, err)

	s1, r1, g1 := s.Totals()
	s2, r2, g2 := s.Totals()
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, g1, g2)
}

func TestClearAll(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "2", "")
	require.NoError(t, err)
	s.SetRateOverride("Rice", "", "55")

	s.ClearAll()
	assert.True(t, s.Empty())
	_, ok := s.PendingOverride("Rice", "")
	assert.False(t, ok)

	subtotal, roundOff, grand := s.Totals()
	assert.Zero(t, subtotal)
	assert.Zero(t, roundOff)
	assert.Zero(t, grand)
}

func TestSelectionsOrderedByName(t *testing.T) {
	s := NewSession()
	ctx := context.Background()

	_, err := s.SelectQuantity(ctx, sugarRates(), "Sugar", "", "1", "")
	require.NoError(t, err)
	_, err = s.SelectQuantity(ctx, sugarRates(), "Rice", "", "1", "")
	require.NoError(t, err)
	_, err = s.SelectQuantity(ctx, sugarRates(), "Oil", "", "1", "")
	require.NoError(t, err)

	sels := s.Selections()
	require.Len(t, sels, 3)
	assert.Equal(t, "Oil", sels[0].ItemName)
	assert.Equal(t, "Rice", sels[1].ItemName)
	assert.Equal(t, "Sugar", sels[2].ItemName)
}
