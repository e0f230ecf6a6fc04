package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/cache"
	"github.com/playfiesta/store_api/internal/middleware"
	"github.com/playfiesta/store_api/internal/models"
	"github.com/playfiesta/store_api/internal/utils"
)

// PreferenceHandler serves the admin's panel preferences, currently just the
// active brand division.
type PreferenceHandler struct {
	preferences *cache.PreferenceStore
}

// NewPreferenceHandler constructs a PreferenceHandler.
func NewPreferenceHandler(preferences *cache.PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// GetDivision handles GET /v1/admin/preferences/division
// Missing or invalid stored values come back as the default division.
func (h *PreferenceHandler) GetDivision(c *gin.Context) {
	division := h.preferences.GetDivision(c.Request.Context(), middleware.UserID(c))
	utils.Success(c, 200, "Preference retrieved", gin.H{"division": division})
}

// setDivisionRequest is the preference input.
type setDivisionRequest struct {
	Division string `json:"division" binding:"required"`
}

// SetDivision handles PUT /v1/admin/preferences/division
func (h *PreferenceHandler) SetDivision(c *gin.Context) {
	var req setDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationError(c, "Invalid preference payload", bindingFields(err))
		return
	}

	division := models.Division(req.Division)
	if !division.Valid() {
		respondError(c, utils.ErrInvalidDivision)
		return
	}

	if err := h.preferences.SetDivision(c.Request.Context(), middleware.UserID(c), division); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to save preference")
		return
	}
	utils.Success(c, 200, "Preference saved", gin.H{"division": division})
}
