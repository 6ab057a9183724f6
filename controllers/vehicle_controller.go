package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fueltrack-api/middleware"
	"fueltrack-api/models"
	"fueltrack-api/services"
	"fueltrack-api/utils"
)

type VehicleController struct {
	vehicles *services.VehicleService
}

func NewVehicleController(vehicles *services.VehicleService) *VehicleController {
	return &VehicleController{vehicles: vehicles}
}

func (vc *VehicleController) GetVehicles(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	cards, err := vc.vehicles.Cards(c.Request.Context(), userID)
	if err != nil {
		utils.SendServiceError(c, err, "Vehicles")
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (vc *VehicleController) GetVehicle(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	card, err := vc.vehicles.Card(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusOK, card)
}

func (vc *VehicleController) CreateVehicle(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if !utils.IsValidVIN(req.VIN) {
		utils.SendValidationError(c, "vin must be 17 characters without I, O or Q")
		return
	}

	vehicle, err := vc.vehicles.Create(c.Request.Context(), userID, c.GetString(middleware.ContextEmail), req)
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (vc *VehicleController) UpdateVehicle(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if req.VIN != nil && !utils.IsValidVIN(*req.VIN) {
		utils.SendValidationError(c, "vin must be 17 characters without I, O or Q")
		return
	}

	vehicle, err := vc.vehicles.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (vc *VehicleController) DeleteVehicle(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	if err := vc.vehicles.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.SendServiceError(c, err, "Vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
