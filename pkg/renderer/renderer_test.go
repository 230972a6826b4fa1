package renderer

import (
	"strings"
	"testing"

	"github.com/omkarj/kirana-billing-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "Mangalmurti Traders",
			Address:   "Koradgaon Road, Pathardi",
		},
		BillNo:   "DWL-20261024-5000",
		Date:     "24/10/2026 10:30",
		Customer: "Ramesh",
		Items: []entity.ReceiptItem{
			{Name: "साखर", Quantity: 2.5, Rate: 45.00, Amount: 112.50},
			{Name: "गुळ", Quantity: 1, Rate: 60.00, RateOverridden: true, Amount: 60.00},
		},
		SubTotal:   172.50,
		RoundOff:   0.50,
		GrandTotal: 173.00,
	}

	html, err := HTML(r)
	require.NoError(t, err)

	assert.Contains(t, html, "Mangalmurti Traders")
	assert.Contains(t, html, "DWL-20261024-5000")
	assert.Contains(t, html, "साखर")
	// Fractional quantity keeps its fraction, whole quantity does not.
	assert.Contains(t, html, ">2.5<")
	assert.Contains(t, html, ">1<")
	// Overridden rate is marked.
	assert.Contains(t, html, "गुळ *")
	assert.Contains(t, html, "112.50")
	assert.Contains(t, html, "+0.50")
	assert.Contains(t, html, "173.00")
}

func TestHTMLZeroRoundOffOmitted(t *testing.T) {
	r := &entity.Receipt{
		Header:     entity.ReceiptHeader{StoreName: "Store"},
		BillNo:     "DWL-20261024-5001",
		Items:      []entity.ReceiptItem{{Name: "Item", Quantity: 2, Rate: 45.00, Amount: 90.00}},
		SubTotal:   90.00,
		GrandTotal: 90.00,
	}

	html, err := HTML(r)
	require.NoError(t, err)
	assert.False(t, strings.Contains(html, "Round Off"))
}
