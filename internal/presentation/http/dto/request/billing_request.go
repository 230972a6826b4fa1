package request

// SelectQuantityRequest represents a quantity entry for one line.
// Quantity and rate travel as raw strings: the counter screen sends
// keystrokes as-is and the server decides how to read them.
type SelectQuantityRequest struct {
	ItemName    string `json:"item_name" binding:"required"`
	VariantName string `json:"variant_name"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// SetRateRequest represents a session-local rate override for a line.
type SetRateRequest struct {
	ItemName    string `json:"item_name" binding:"required"`
	VariantName string `json:"variant_name"`
	Rate        string `json:"rate" binding:"required"`
}

// CheckoutRequest represents the save bill request
type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
	CashierName  string `json:"cashier_name"`
}
