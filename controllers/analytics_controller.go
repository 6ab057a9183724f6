package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fueltrack-api/middleware"
	"fueltrack-api/services"
	"fueltrack-api/utils"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// GetEfficiency serves ?timeframe=all|year|6months|3months&window=N.
func (ac *AnalyticsController) GetEfficiency(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	window, ok := utils.QueryInt(c, "window", 0)
	if !ok {
		utils.SendValidationError(c, "window must be an integer")
		return
	}

	resp, err := ac.analytics.Efficiency(c.Request.Context(), userID, c.Param("id"), c.DefaultQuery("timeframe", services.TimeframeAll), window)
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusOK, resp)
}
