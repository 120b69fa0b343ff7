package handler

import (
	"net/http"

	"pharmacy-loan-tracker/internal/service"
	"pharmacy-loan-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	searchService    *service.SearchService
}

func NewDashboardHandler(dashboardService *service.DashboardService, searchService *service.SearchService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		searchService:    searchService,
	}
}

// GetSummary returns the dashboard counters and recent activity
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to build summary")
		return
	}

	utils.SuccessResponse(c, summary)
}

// Search runs the quick search across hospitals, medications and loans
func (h *DashboardHandler) Search(c *gin.Context) {
	results, err := h.searchService.Search(c.Query("q"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Search failed")
		return
	}

	utils.SuccessResponse(c, results)
}
