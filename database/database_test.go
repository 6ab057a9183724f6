package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fueltrack-api/config"
	"fueltrack-api/models"
)

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	_, err := Initialize(config.DatabaseConfig{Driver: "postgres", URL: "x"})
	assert.Error(t, err)
}

func TestMigrateAndSeed(t *testing.T) {
	db, err := Initialize(config.DatabaseConfig{
		Driver:   "sqlite",
		URL:      filepath.Join(t.TempDir(), "seed.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrating twice is a no-op")
	require.NoError(t, Ping(db))

	assert.True(t, db.Migrator().HasIndex(&models.ActivityRecord{}, "idx_activities_user_date"))

	require.NoError(t, SeedData(db, "demo"))
	require.NoError(t, SeedData(db, "demo"))

	var vehicles, activities int64
	require.NoError(t, db.Model(&models.Vehicle{}).Where("user_id = ?", "demo").Count(&vehicles).Error)
	require.NoError(t, db.Model(&models.ActivityRecord{}).Where("user_id = ?", "demo").Count(&activities).Error)
	assert.EqualValues(t, 1, vehicles)
	assert.EqualValues(t, 7, activities)
}
