package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/repository"
	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
	"github.com/playfiesta/store_api/pkg/spreadsheet"
)

// AdminOrderHandler serves order management for the admin panel.
type AdminOrderHandler struct {
	orderService *service.OrderService
}

// NewAdminOrderHandler constructs an AdminOrderHandler.
func NewAdminOrderHandler(orderService *service.OrderService) *AdminOrderHandler {
	return &AdminOrderHandler{orderService: orderService}
}

func orderFilterFromQuery(c *gin.Context) repository.OrderFilter {
	filter := repository.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
		Page:   1,
		Limit:  20,
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}
	return filter
}

// ListOrders handles GET /v1/admin/orders
func (h *AdminOrderHandler) ListOrders(c *gin.Context) {
	filter := orderFilterFromQuery(c)
	orders, total, err := h.orderService.ListOrders(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}
	utils.SuccessWithPagination(c, 200, "Orders retrieved", orders, filter.Page, filter.Limit, total)
}

// GetOrder handles GET /v1/admin/orders/:id
func (h *AdminOrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}

// updateStatusRequest is the status change input.
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /v1/admin/orders/:id/status
func (h *AdminOrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid status payload", bindingFields(err))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Param("id"), models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Order status updated", order)
}

// MarkPaid handles POST /v1/admin/orders/:id/pay
// Safe to retry; a replay on an already-paid order is a no-op success.
func (h *AdminOrderHandler) MarkPaid(c *gin.Context) {
	order, err := h.orderService.MarkPaid(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Order marked paid", order)
}

// Export handles GET /v1/admin/orders/export
// Streams the current filter's orders as an xlsx download.
func (h *AdminOrderHandler) Export(c *gin.Context) {
	filter := orderFilterFromQuery(c)
	filter.Page = 1
	filter.Limit = 10000

	orders, _, err := h.orderService.ListOrders(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve orders")
		return
	}

	rows := make([]spreadsheet.OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, spreadsheet.OrderRow{
			ID:        o.ID,
			Date:      o.CreatedAt,
			Client:    o.ClientName,
			Phone:     o.ClientPhone,
			Status:    string(o.Status),
			Paid:      o.Paid,
			Total:     o.Total.StringFixed(2),
			ItemCount: o.ItemCount,
		})
	}

	payload, err := spreadsheet.BuildOrders(rows)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to build export")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
