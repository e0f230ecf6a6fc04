package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/playfiesta/store_api/internal/service"
	"github.com/playfiesta/store_api/internal/utils"
)

// StatsHandler serves the admin dashboard rollup.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetDashboard handles GET /v1/admin/dashboard
// Unlike plain reads this does not degrade: a partial dashboard is worse
// than no dashboard, so any query failure fails the whole call.
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.statsService.GetDashboard(c.Request.Context())
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute dashboard")
		return
	}
	utils.Success(c, 200, "Dashboard computed", dashboard)
}
