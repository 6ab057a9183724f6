package models

import (
	"fmt"
	"strings"
	"time"

	"fueltrack-api/calculations"
)

const (
	DefaultVehicleImage = "https://images.unsplash.com/photo-1533473359331-0135ef1b58bf?auto=format&fit=crop&q=80&w=800"
	DefaultFuelType     = "Gas"
)

type Vehicle struct {
	ID         string `json:"id" gorm:"primaryKey;size:191"`
	UserID     string `json:"user_id" gorm:"not null;size:191;index"`
	OwnerEmail string `json:"-" gorm:"size:255"`
	Make       string `json:"make" gorm:"not null;size:100"`
	Model      string `json:"model" gorm:"not null;size:100"`
	Year       int    `json:"year" gorm:"not null"`
	VIN        string `json:"vin" gorm:"size:17"`
	FuelType   string `json:"fuel_type" gorm:"size:50;default:'Gas'"`
	Image      string `json:"image" gorm:"size:500"`

	// Odometer is the manually entered baseline, possibly advanced by later
	// activity readings. OdometerUpdatedAt only moves on manual edits.
	Odometer          float64    `json:"odometer" gorm:"not null;default:0"`
	OdometerUpdatedAt *time.Time `json:"odometer_updated_at"`

	ServiceInterval float64    `json:"service_interval" gorm:"not null;default:5000"`
	LastReminderAt  *time.Time `json:"last_reminder_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Activities []ActivityRecord `json:"-" gorm:"foreignKey:VehicleID"`
}

// DisplayName is "<year> <make> <model>".
func (v Vehicle) DisplayName() string {
	return strings.TrimSpace(fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
}

func (v Vehicle) Baseline() calculations.Baseline {
	return calculations.Baseline{Odometer: v.Odometer, UpdatedAt: v.OdometerUpdatedAt}
}

// VehicleCard is a vehicle as shown on the dashboard.
type VehicleCard struct {
	Vehicle
	Name              string                         `json:"name"`
	CurrentOdometer   float64                        `json:"current_odometer"`
	AverageEfficiency *float64                       `json:"average_efficiency"`
	Maintenance       calculations.MaintenanceStatus `json:"maintenance"`
}

type CreateVehicleRequest struct {
	Make            string   `json:"make" binding:"required"`
	Model           string   `json:"model" binding:"required"`
	Year            int      `json:"year" binding:"required,gte=1900,lte=2100"`
	VIN             string   `json:"vin" binding:"omitempty,max=17"`
	FuelType        string   `json:"fuel_type"`
	ServiceInterval *float64 `json:"service_interval" binding:"omitempty,gt=0"`
}

// UpdateVehicleRequest carries optional fields; a non-nil Odometer is a manual
// odometer edit.
type UpdateVehicleRequest struct {
	Make            *string  `json:"make"`
	Model           *string  `json:"model"`
	Year            *int     `json:"year" binding:"omitempty,gte=1900,lte=2100"`
	VIN             *string  `json:"vin" binding:"omitempty,max=17"`
	FuelType        *string  `json:"fuel_type"`
	Image           *string  `json:"image"`
	Odometer        *float64 `json:"odometer" binding:"omitempty,gte=0"`
	ServiceInterval *float64 `json:"service_interval" binding:"omitempty,gt=0"`
}
