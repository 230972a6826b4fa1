package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/application/service"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/response"
	"github.com/omkarj/kirana-billing-api/pkg/pagination"
	"github.com/omkarj/kirana-billing-api/pkg/renderer"
)

// BillHandler handles saved bill HTTP requests
type BillHandler struct {
	billingService  *service.BillingService
	settingsService *service.SettingsService
	printerService  *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billingService *service.BillingService,
	settingsService *service.SettingsService,
	printerService *service.PrinterService,
) *BillHandler {
	return &BillHandler{
		billingService:  billingService,
		settingsService: settingsService,
		printerService:  printerService,
	}
}

// List returns saved bills, newest first
func (h *BillHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	result, err := h.billingService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// NextNumber reports the number the next bill will receive
func (h *BillHandler) NextNumber(c *gin.Context) {
	billNo, err := h.billingService.NextBillNo(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Next bill number retrieved", gin.H{"bill_no": billNo})
}

// Get retrieves a saved bill by ID
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// GetHTML renders a saved bill as a printable HTML page
func (h *BillHandler) GetHTML(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	html, err := renderer.HTML(service.BuildReceipt(bill, settings))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "text/html; charset=utf-8", []byte(html))
}

// Print reprints a saved bill on the thermal printer
func (h *BillHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipt, err := h.printerService.PrintBill(c.Request.Context(), bill)
	if err != nil {
		// The receipt is still useful when the printer is offline.
		response.OK(c, "Printer unavailable, returning receipt data", receipt)
		return
	}

	response.OK(c, "Bill sent to printer", receipt)
}
