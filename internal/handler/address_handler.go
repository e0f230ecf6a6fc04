package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/middleware"
	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// AddressHandler serves the authenticated user's address. The owner is
// always the token identity from the request context, never a body field.
type AddressHandler struct {
	addressService *service.AddressService
}

// NewAddressHandler constructs an AddressHandler.
func NewAddressHandler(addressService *service.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressService}
}

// GetAddress handles GET /v1/me/address
func (h *AddressHandler) GetAddress(c *gin.Context) {
	addr, err := h.addressService.GetAddress(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Address retrieved", addr)
}

// SetAddress handles PUT /v1/me/address
func (h *AddressHandler) SetAddress(c *gin.Context) {
	var req service.SetAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid address payload", bindingFields(err))
		return
	}

	addr, err := h.addressService.SetAddress(middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Address saved", addr)
}

// DeleteAddress handles DELETE /v1/me/address
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	if err := h.addressService.DeleteAddress(middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, 200, "Address deleted", nil)
}
