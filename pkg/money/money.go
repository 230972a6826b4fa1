package money

import (
	"math"
	"strconv"
)

// All monetary amounts are stored as int64 paise (hundredths of a rupee).
// Conversion to and from decimal rupees happens only at the JSON boundary.

// ToCents converts a decimal rupee amount to paise, rounding half away
// from zero so 0.005 becomes 1 paisa.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// ToDecimal converts paise back to a decimal rupee amount for display.
func ToDecimal(cents int64) float64 {
	return float64(cents) / 100
}

// LineAmount computes the paise amount for a line: quantity times the
// unit rate in paise, rounded half away from zero. Quantity may be
// fractional (loose goods sold by weight).
func LineAmount(qty float64, rateCents int64) int64 {
	return int64(math.Round(qty * float64(rateCents)))
}

// RoundOff returns the signed paise adjustment that brings subtotal to
// the nearest whole rupee, rounding half away from zero.
func RoundOff(subtotalCents int64) int64 {
	rupees := math.Round(float64(subtotalCents) / 100)
	return int64(rupees)*100 - subtotalCents
}

// FormatQty renders a quantity without trailing zeros: 2 -> "2",
// 2.5 -> "2.5".
func FormatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}
