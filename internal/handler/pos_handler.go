package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// POSHandler serves the point-of-sale endpoints used at the counter.
type POSHandler struct {
	catalogService *service.CatalogService
	orderService   *service.OrderService
}

// NewPOSHandler constructs a POSHandler.
func NewPOSHandler(catalogService *service.CatalogService, orderService *service.OrderService) *POSHandler {
	return &POSHandler{catalogService: catalogService, orderService: orderService}
}

// LookupBarcode handles GET /v1/pos/products/:barcode
func (h *POSHandler) LookupBarcode(c *gin.Context) {
	product, err := h.catalogService.GetProductByBarcode(c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// CreateSale handles POST /v1/pos/sales
// A walk-in sale is paid immediately, so the order comes back PAID with
// stock already decremented.
func (h *POSHandler) CreateSale(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid sale payload", bindingFields(err))
		return
	}

	order, err := h.orderService.POSSale(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Sale recorded", order)
}
