package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fueltrack-api/middleware"
	"fueltrack-api/services"
	"fueltrack-api/utils"
)

type AlertController struct {
	alerts *services.AlertService
}

func NewAlertController(alerts *services.AlertService) *AlertController {
	return &AlertController{alerts: alerts}
}

func (ac *AlertController) GetAlerts(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	page, ok := utils.QueryInt(c, "page", 1)
	if !ok {
		utils.SendValidationError(c, "page must be an integer")
		return
	}
	limit, ok := utils.QueryInt(c, "limit", 20)
	if !ok {
		utils.SendValidationError(c, "limit must be an integer")
		return
	}

	alerts, err := ac.alerts.List(c.Request.Context(), userID, page, limit, c.Query("unread") == "true")
	if err != nil {
		utils.SendServiceError(c, err, "Alerts")
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (ac *AlertController) GetAlertStats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	stats, err := ac.alerts.Stats(c.Request.Context(), userID)
	if err != nil {
		utils.SendServiceError(c, err, "Alerts")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (ac *AlertController) MarkAsRead(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := ac.alerts.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.SendServiceError(c, err, "Alert")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert marked as read"})
}

func (ac *AlertController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	n, err := ac.alerts.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.SendServiceError(c, err, "Alerts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All alerts marked as read", "updated": n})
}
