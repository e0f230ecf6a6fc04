package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// OrderHandler serves the public checkout endpoints.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid order payload", bindingFields(err))
		return
	}

	order, err := h.orderService.CreateOrder(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 201, "Order created", order)
}

// GetOrder handles GET /v1/orders/:id
// Order ids are unguessable UUIDs; knowing one is the access token for the
// order confirmation page.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}
