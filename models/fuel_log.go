package models

import "time"

// LegacyFuelLog is a row of the old fuel log schema. Numeric fields were stored
// as typed by the user and may be blank or malformed.
type LegacyFuelLog struct {
	ID           string    `json:"id" gorm:"primaryKey;size:191"`
	VehicleID    string    `json:"vehicle_id" gorm:"not null;size:191;index"`
	UserID       string    `json:"user_id" gorm:"not null;size:191;index"`
	Date         string    `json:"date" gorm:"size:64"`
	Odometer     string    `json:"odometer" gorm:"size:64"`
	Amount       string    `json:"amount" gorm:"size:64"`
	PricePerUnit string    `json:"price_per_unit" gorm:"size:64"`
	TotalCost    string    `json:"total_cost" gorm:"size:64"`
	Notes        string    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (LegacyFuelLog) TableName() string {
	return "fuel_logs"
}

// MigrationFailure records one legacy log that could not be fully moved.
// Stage is "copy" when nothing was written and "delete" when the copy exists
// but the legacy row is still there.
type MigrationFailure struct {
	ID    string `json:"id"`
	Stage string `json:"stage"`
	Error string `json:"error"`
}

type MigrationReport struct {
	Total    int                `json:"total"`
	Migrated int                `json:"migrated"`
	Failed   []MigrationFailure `json:"failed"`
}
