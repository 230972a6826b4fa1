package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/omkarj/kirana-billing-api/internal/application/service"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/request"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/response"
)

// BillingHandler handles the live billing session HTTP requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// GetSession returns the current session state
func (h *BillingHandler) GetSession(c *gin.Context) {
	view := h.billingService.GetSession(c.Request.Context())
	response.OK(c, "Session retrieved successfully", view)
}

// SelectQuantity sets the quantity for one line and returns the
// updated session
func (h *BillingHandler) SelectQuantity(c *gin.Context) {
	var req request.SelectQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.billingService.SelectQuantity(c.Request.Context(), &service.SelectQuantityInput{
		ItemName:    req.ItemName,
		VariantName: req.VariantName,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", view)
}

// SetRate applies a session-local rate override for one line
func (h *BillingHandler) SetRate(c *gin.Context) {
	var req request.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.billingService.SetRate(c.Request.Context(), &service.SetRateInput{
		ItemName:    req.ItemName,
		VariantName: req.VariantName,
		Rate:        req.Rate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Rate updated", view)
}

// Reset clears the session for a fresh bill
func (h *BillingHandler) Reset(c *gin.Context) {
	view := h.billingService.Reset(c.Request.Context())
	response.OK(c, "Session cleared", view)
}

// Checkout finalizes the session into a saved bill
func (h *BillingHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.Checkout(c.Request.Context(), &service.CheckoutInput{
		CustomerName: req.CustomerName,
		CashierName:  req.CashierName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill saved successfully", bill)
}
