package request

// UpdateSettingsRequest represents the update store settings request.
// Omitted fields are left unchanged.
type UpdateSettingsRequest struct {
	StoreName    *string `json:"store_name"`
	StoreAddress *string `json:"store_address"`
	City         *string `json:"city"`
	BillPrefix   *string `json:"bill_prefix"`
}
