package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fueltrack-api/middleware"
	"fueltrack-api/models"
	"fueltrack-api/services"
	"fueltrack-api/utils"
)

type ActivityController struct {
	activities *services.ActivityService
	migration  *services.MigrationService
}

func NewActivityController(activities *services.ActivityService, migration *services.MigrationService) *ActivityController {
	return &ActivityController{activities: activities, migration: migration}
}

// GetActivities lists activities across all of the user's vehicles.
func (ac *ActivityController) GetActivities(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	items, err := ac.activities.List(c.Request.Context(), userID, services.ActivityFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
	})
	if err != nil {
		utils.SendServiceError(c, err, "Activities")
		return
	}

	c.JSON(http.StatusOK, items)
}

func (ac *ActivityController) GetVehicleActivities(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	records, err := ac.activities.ListForVehicle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusOK, records)
}

func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	record, err := ac.activities.Add(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	record, err := ac.activities.Update(c.Request.Context(), userID, c.Param("id"), c.Param("activityId"), req)
	if err != nil {
		utils.SendServiceError(c, err, "Activity")
		return
	}

	c.JSON(http.StatusOK, record)
}

func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := ac.activities.Delete(c.Request.Context(), userID, c.Param("id"), c.Param("activityId")); err != nil {
		utils.SendServiceError(c, err, "Activity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

func (ac *ActivityController) BulkDelete(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	results := ac.activities.BulkDelete(c.Request.Context(), userID, req.IDs)
	deleted := 0
	for _, r := range results {
		if r.Deleted {
			deleted++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"failed":  len(results) - deleted,
		"results": results,
	})
}

func (ac *ActivityController) GetServiceTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service_types": services.ServiceTypeCatalogue()})
}

// MigrateFuelLogs moves the caller's legacy fuel logs into activities.
func (ac *ActivityController) MigrateFuelLogs(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	report, err := ac.migration.MigrateFuelLogs(c.Request.Context(), userID)
	if err != nil {
		utils.SendServiceError(c, err, "Migration")
		return
	}

	c.JSON(http.StatusOK, report)
}
