package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(4500), ToCents(45.00))
	assert.Equal(t, int64(4550), ToCents(45.50))
	assert.Equal(t, int64(1), ToCents(0.005))
	assert.Equal(t, int64(0), ToCents(0))
}

func TestLineAmount(t *testing.T) {
	// 2 x 45.00 = 90.00
	assert.Equal(t, int64(9000), LineAmount(2, 4500))
	// 2.5 kg x 45.00 = 112.50
	assert.Equal(t, int64(11250), LineAmount(2.5, 4500))
	// 0.333 x 10.00 = 3.33
	assert.Equal(t, int64(333), LineAmount(0.333, 1000))
	assert.Equal(t, int64(0), LineAmount(0, 4500))
}

func TestRoundOff(t *testing.T) {
	// Whole rupee subtotal needs no adjustment.
	assert.Equal(t, int64(0), RoundOff(9000))
	// 112.50 rounds half away from zero to 113.00.
	assert.Equal(t, int64(50), RoundOff(11250))
	// 112.40 rounds down to 112.00.
	assert.Equal(t, int64(-40), RoundOff(11240))
	// Grand total is always a whole rupee amount.
	for _, sub := range []int64{1, 49, 50, 51, 99, 12345, 11250} {
		grand := sub + RoundOff(sub)
		assert.Zero(t, grand%100, "subtotal %d", sub)
	}
}
