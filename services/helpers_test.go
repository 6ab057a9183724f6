package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fueltrack-api/models"
	"fueltrack-api/repositories"
	"fueltrack-api/testutil"
)

var t0 = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	vehicles   *repositories.VehicleRepository
	activities *repositories.ActivityRepository
	alerts     *repositories.AlertRepository
	fuelLogs   *repositories.FuelLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	return &fixture{
		db:         db,
		vehicles:   repositories.NewVehicleRepository(db),
		activities: repositories.NewActivityRepository(db),
		alerts:     repositories.NewAlertRepository(db),
		fuelLogs:   repositories.NewFuelLogRepository(db),
	}
}

func (f *fixture) vehicle(t *testing.T, id, userID string, odometer float64, updatedAt *time.Time) *models.Vehicle {
	t.Helper()
	v := &models.Vehicle{
		ID:                id,
		UserID:            userID,
		OwnerEmail:        userID + "@example.com",
		Make:              "Toyota",
		Model:             "Corolla",
		Year:              2019,
		FuelType:          "Diesel",
		Odometer:          odometer,
		OdometerUpdatedAt: updatedAt,
		ServiceInterval:   5000,
	}
	require.NoError(t, f.vehicles.Create(context.Background(), v))
	return v
}

func (f *fixture) activity(t *testing.T, rec models.ActivityRecord) {
	t.Helper()
	require.NoError(t, f.activities.Create(context.Background(), &rec))
}

func fuel(id, vehicleID string, date time.Time, odometer, amount float64) models.ActivityRecord {
	return models.ActivityRecord{
		ID: id, VehicleID: vehicleID, UserID: "u1",
		Type: models.ActivityTypeFuel, Date: date,
		Odometer: &odometer, Amount: &amount,
	}
}

func service(id, vehicleID string, date time.Time, odometer float64) models.ActivityRecord {
	return models.ActivityRecord{
		ID: id, VehicleID: vehicleID, UserID: "u1",
		Type: models.ActivityTypeService, Date: date,
		Odometer: &odometer, ServiceTypes: models.StringSliceType{"Oil Change"}, ServiceType: "Oil Change",
	}
}

func ptr[T any](v T) *T { return &v }
