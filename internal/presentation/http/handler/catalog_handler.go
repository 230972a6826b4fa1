package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/omkarj/kirana-billing-api/internal/application/service"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/request"
	"github.com/omkarj/kirana-billing-api/internal/presentation/http/dto/response"
)

// CatalogHandler handles catalog-related HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List returns the catalog in display order
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog retrieved successfully", items)
}

// Columns returns the catalog split into display columns for the
// counter screen. ?count= overrides the default of 3.
func (h *CatalogHandler) Columns(c *gin.Context) {
	count := 3
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.BadRequest(c, "count must be a positive integer")
			return
		}
		count = n
	}

	columns, err := h.catalogService.Columns(c.Request.Context(), count)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Catalog columns retrieved successfully", columns)
}

// Export streams the catalog as an Excel workbook
func (h *CatalogHandler) Export(c *gin.Context) {
	data, err := h.catalogService.ExportXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func variantsFromRequest(reqs []request.VariantRequest) []service.VariantInput {
	variants := make([]service.VariantInput, 0, len(reqs))
	for _, v := range reqs {
		variants = append(variants, service.VariantInput{Name: v.Name, Rate: v.Rate})
	}
	return variants
}

// Create adds a new catalog item
func (h *CatalogHandler) Create(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.AddItem(c.Request.Context(), &service.AddItemInput{
		Name:     req.Name,
		Rate:     req.Rate,
		Position: req.Position,
		Variants: variantsFromRequest(req.Variants),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item added successfully", item)
}

// Update updates an existing catalog item
func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateItemInput{
		ID:       id,
		Name:     req.Name,
		Rate:     req.Rate,
		Position: req.Position,
	}
	if req.Variants != nil {
		variants := variantsFromRequest(*req.Variants)
		input.Variants = &variants
	}

	item, err := h.catalogService.UpdateItem(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete removes a catalog item
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	if err := h.catalogService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}
