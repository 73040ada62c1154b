package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LarozaLighting/laroza_api/internal/service"
	"github.com/LarozaLighting/laroza_api/internal/utils"
)

// DashboardHandler serves the admin overview snapshot.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /v1/dashboard/stats.
func (h *DashboardHandler) Stats(c *gin.Context) {
	today := time.Now().Format(utils.DateLayout)
	stats, err := h.dashboardService.GetStats(c.Request.Context(), today)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to compute dashboard stats")
		return
	}
	utils.Success(c, 200, "Dashboard stats retrieved successfully", stats)
}
