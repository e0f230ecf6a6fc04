package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// ConfigHandler serves the store configuration singleton.
type ConfigHandler struct {
	configService *service.ConfigService
}

// NewConfigHandler constructs a ConfigHandler.
func NewConfigHandler(configService *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// GetConfig handles GET /v1/store/config (public) and GET /v1/admin/config.
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	cfg, err := h.configService.Get()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load store configuration")
		return
	}
	utils.Success(c, 200, "Configuration retrieved", cfg)
}

// UpdateConfig handles PUT /v1/admin/config
func (h *ConfigHandler) UpdateConfig(c *gin.Context) {
	var req service.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid configuration payload", bindingFields(err))
		return
	}

	cfg, err := h.configService.Update(&req)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update store configuration")
		return
	}
	utils.Success(c, 200, "Configuration updated", cfg)
}
