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

func TestActivityRepository_RoundTripsOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(testutil.NewDB(t))
	date := time.Date(2025, time.April, 2, 10, 30, 0, 0, time.UTC)

	rec := &models.ActivityRecord{
		ID:           "a1",
		VehicleID:    "v1",
		UserID:       "u1",
		Type:         models.ActivityTypeService,
		Date:         date,
		Odometer:     testutil.Float(15200),
		ServiceTypes: models.StringSliceType{"Oil Change", "Inspection"},
		ServiceType:  "Oil Change, Inspection",
	}
	require.NoError(t, repo.Create(ctx, rec))

	got, err := repo.Get(ctx, "v1", "a1")
	require.NoError(t, err)
	assert.True(t, got.Date.Equal(date))
	assert.Nil(t, got.Amount)
	require.NotNil(t, got.Odometer)
	assert.Equal(t, 15200.0, *got.Odometer)
	assert.Equal(t, models.StringSliceType{"Oil Change", "Inspection"}, got.ServiceTypes)

	_, err = repo.Get(ctx, "other-vehicle", "a1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestActivityRepository_ListByVehiclesGroups(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(testutil.NewDB(t))
	now := time.Now().UTC()
	for _, rec := range []models.ActivityRecord{
		{ID: "a1", VehicleID: "v1", UserID: "u1", Date: now},
		{ID: "a2", VehicleID: "v1", UserID: "u1", Date: now},
		{ID: "a3", VehicleID: "v2", UserID: "u1", Date: now},
		{ID: "a4", VehicleID: "v3", UserID: "u1", Date: now},
	} {
		rec := rec
		require.NoError(t, repo.Create(ctx, &rec))
	}

	grouped, err := repo.ListByVehicles(ctx, []string{"v1", "v2"})
	require.NoError(t, err)
	assert.Len(t, grouped["v1"], 2)
	assert.Len(t, grouped["v2"], 1)
	assert.NotContains(t, grouped, "v3")

	empty, err := repo.ListByVehicles(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestActivityRepository_DeleteAndLegacyLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(testutil.NewDB(t))
	rec := &models.ActivityRecord{
		ID: "a1", VehicleID: "v1", UserID: "u1",
		Date: time.Now().UTC(), LegacyID: testutil.String("log-7"),
	}
	require.NoError(t, repo.Create(ctx, rec))

	found, err := repo.FindByLegacyID(ctx, "log-7")
	require.NoError(t, err)
	assert.Equal(t, "a1", found.ID)

	assert.ErrorIs(t, repo.Delete(ctx, "u2", "a1"), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, "u1", "a1"))
	assert.ErrorIs(t, repo.Delete(ctx, "u1", "a1"), gorm.ErrRecordNotFound)
}
