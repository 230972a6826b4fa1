package request

// VariantRequest is one variant in a catalog item request.
type VariantRequest struct {
	Name string  `json:"name" binding:"required"`
	Rate float64 `json:"rate"`
}

// AddItemRequest represents the add catalog item request
type AddItemRequest struct {
	Name     string           `json:"name" binding:"required"`
	Rate     float64          `json:"rate" binding:"required"`
	Position int              `json:"position"`
	Variants []VariantRequest `json:"variants"`
}

// UpdateItemRequest represents the update catalog item request.
// Omitted fields are left unchanged; a present variants array replaces
// the variant list wholesale.
type UpdateItemRequest struct {
	Name     *string           `json:"name"`
	Rate     *float64          `json:"rate"`
	Position *int              `json:"position"`
	Variants *[]VariantRequest `json:"variants"`
}
