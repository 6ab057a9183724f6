package models

import (
	"time"

	"fueltrack-api/calculations"
)

type ActivityType string

const (
	ActivityTypeFuel    ActivityType = "Fuel"
	ActivityTypeService ActivityType = "Service"
)

// ServiceTypes is the catalogue offered when logging a service. "Other" lets
// the user enter a free-form type instead.
var ServiceTypes = []string{
	"Oil Change",
	"Tire Rotation",
	"Inspection",
	"Battery Replacement",
	"Brake Service",
	"Coolant Flush",
	"Air Filter Replacement",
	"Other",
}

// ActivityRecord is one logged fuel fill-up or service event for a vehicle.
type ActivityRecord struct {
	ID        string       `json:"id" gorm:"primaryKey;size:191"`
	VehicleID string       `json:"vehicle_id" gorm:"not null;size:191;index:idx_activities_vehicle_date,priority:1"`
	UserID    string       `json:"user_id" gorm:"not null;size:191;index"`
	Type      ActivityType `json:"type" gorm:"size:20"`
	Date      time.Time    `json:"date" gorm:"not null;index:idx_activities_vehicle_date,priority:2"`

	Odometer     *float64 `json:"odometer"`
	Amount       *float64 `json:"amount"`
	PricePerUnit *float64 `json:"price_per_unit"`
	TotalCost    *float64 `json:"total_cost"`
	FuelType     string   `json:"fuel_type,omitempty" gorm:"size:50"`

	ServiceTypes StringSliceType `json:"service_types" gorm:"type:json"`
	// ServiceType is the comma-joined form of ServiceTypes kept for older
	// clients.
	ServiceType string `json:"service_type,omitempty" gorm:"size:500"`
	Notes       string `json:"notes" gorm:"type:text"`

	// LegacyID links a record to the fuel log it was migrated from.
	LegacyID *string `json:"legacy_id,omitempty" gorm:"size:191;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ActivityRecord) TableName() string {
	return "activities"
}

// EffectiveType reads an untagged record as a fuel fill-up.
func (a ActivityRecord) EffectiveType() ActivityType {
	if a.Type == "" {
		return ActivityTypeFuel
	}
	return a.Type
}

func (a ActivityRecord) IsFuel() bool {
	return a.EffectiveType() == ActivityTypeFuel
}

func (a ActivityRecord) Entry() calculations.Entry {
	return calculations.Entry{ID: a.ID, Date: a.Date, Odometer: a.Odometer, Amount: a.Amount}
}

func (a ActivityRecord) Reading() calculations.Reading {
	return calculations.Reading{Date: a.Date, Odometer: a.Odometer}
}

// FuelEntries keeps the fuel records and converts them for aggregation.
func FuelEntries(records []ActivityRecord) []calculations.Entry {
	entries := make([]calculations.Entry, 0, len(records))
	for _, r := range records {
		if r.IsFuel() {
			entries = append(entries, r.Entry())
		}
	}
	return entries
}

func Readings(records []ActivityRecord) []calculations.Reading {
	readings := make([]calculations.Reading, 0, len(records))
	for _, r := range records {
		readings = append(readings, r.Reading())
	}
	return readings
}

// ServiceReadings keeps only service records.
func ServiceReadings(records []ActivityRecord) []calculations.Reading {
	readings := make([]calculations.Reading, 0)
	for _, r := range records {
		if r.EffectiveType() == ActivityTypeService {
			readings = append(readings, r.Reading())
		}
	}
	return readings
}

// ActivityRequest is the payload for creating or replacing an activity.
type ActivityRequest struct {
	Type         ActivityType `json:"type"`
	Date         *time.Time   `json:"date" binding:"required"`
	Odometer     *float64     `json:"odometer" binding:"omitempty,gte=0"`
	Amount       *float64     `json:"amount"`
	PricePerUnit *float64     `json:"price_per_unit" binding:"omitempty,gte=0"`
	TotalCost    *float64     `json:"total_cost" binding:"omitempty,gte=0"`
	ServiceTypes []string     `json:"service_types"`
	// CustomServiceType replaces "Other" in ServiceTypes when set.
	CustomServiceType string `json:"custom_service_type"`
	Notes             string `json:"notes"`
}

// ActivityListItem is an activity decorated with its vehicle for the
// cross-vehicle activity list.
type ActivityListItem struct {
	ActivityRecord
	VehicleName string `json:"vehicle_name"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

type BulkDeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}
