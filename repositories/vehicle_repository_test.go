package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fueltrack-api/models"
	"fueltrack-api/testutil"
)

func newVehicle(id, userID string, odometer float64, updatedAt *time.Time) *models.Vehicle {
	return &models.Vehicle{
		ID:                id,
		UserID:            userID,
		Make:              "Honda",
		Model:             "Civic",
		Year:              2020,
		FuelType:          models.DefaultFuelType,
		Odometer:          odometer,
		OdometerUpdatedAt: updatedAt,
		ServiceInterval:   5000,
	}
}

func TestVehicleRepository_GetScopedToUser(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository(testutil.NewDB(t))
	require.NoError(t, repo.Create(ctx, newVehicle("v1", "u1", 0, nil)))

	got, err := repo.Get(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, "Civic", got.Model)

	_, err = repo.Get(ctx, "u2", "v1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVehicleRepository_AdvanceOdometer(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewVehicleRepository(db)
	t0 := time.Date(2025, time.May, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newVehicle("v1", "u1", 1000, &t0)))

	advanced, err := repo.AdvanceOdometer(ctx, "v1", 1200, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, advanced)

	advanced, err = repo.AdvanceOdometer(ctx, "v1", 1100, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, advanced, "lower reading must not win")

	advanced, err = repo.AdvanceOdometer(ctx, "v1", 9000, t0.Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, advanced, "reading before manual edit must not win")

	got, err := repo.Get(ctx, "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.Odometer)
	require.NotNil(t, got.OdometerUpdatedAt)
	assert.True(t, got.OdometerUpdatedAt.Equal(t0), "write-back must not touch the manual timestamp")
}

func TestVehicleRepository_AdvanceOdometerWithoutBaselineTime(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository(testutil.NewDB(t))
	require.NoError(t, repo.Create(ctx, newVehicle("v1", "u1", 0, nil)))

	advanced, err := repo.AdvanceOdometer(ctx, "v1", 350, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, advanced)
}

func TestVehicleRepository_DeleteWithActivities(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewVehicleRepository(db)
	activities := NewActivityRepository(db)

	require.NoError(t, repo.Create(ctx, newVehicle("v1", "u1", 0, nil)))
	require.NoError(t, repo.Create(ctx, newVehicle("v2", "u1", 0, nil)))
	for _, rec := range []models.ActivityRecord{
		{ID: "a1", VehicleID: "v1", UserID: "u1", Date: time.Now().UTC()},
		{ID: "a2", VehicleID: "v2", UserID: "u1", Date: time.Now().UTC()},
	} {
		rec := rec
		require.NoError(t, activities.Create(ctx, &rec))
	}

	assert.ErrorIs(t, repo.DeleteWithActivities(ctx, "someone-else", "v1"), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteWithActivities(ctx, "u1", "v1"))

	remaining, err := activities.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "a2", remaining[0].ID)
}

func TestVehicleRepository_ListAll(t *testing.T) {
	ctx := context.Background()
	repo := NewVehicleRepository(testutil.NewDB(t))
	for _, id := range []string{"v1", "v2", "v3"} {
		require.NoError(t, repo.Create(ctx, newVehicle(id, "u1", 0, nil)))
	}

	var seen []string
	err := repo.ListAll(ctx, 2, func(batch []models.Vehicle) error {
		for _, v := range batch {
			seen = append(seen, v.ID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"v1", "v2", "v3"}, seen)
}
