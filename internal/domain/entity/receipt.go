package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name           string  `json:"name"`
	Quantity       float64 `json:"quantity"`
	Rate           float64 `json:"rate"`
	RateOverridden bool    `json:"rate_overridden,omitempty"`
	Amount         float64 `json:"amount"`
}

// Receipt is a value object representing a printable bill.
// It is not a database entity; it is composed from a saved Bill at
// print time.
type Receipt struct {
	Header     ReceiptHeader `json:"header"`
	BillNo     string        `json:"bill_no"`
	Date       string        `json:"date"`
	Cashier    string        `json:"cashier,omitempty"`
	Customer   string        `json:"customer,omitempty"`
	City       string        `json:"city,omitempty"`
	Items      []ReceiptItem `json:"items"`
	SubTotal   float64       `json:"subtotal"`
	RoundOff   float64       `json:"round_off"`
	GrandTotal float64       `json:"grand_total"`
}
