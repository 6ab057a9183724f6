package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fueltrack-api/config"
	applogger "fueltrack-api/logger"
	"fueltrack-api/models"
)

var log = applogger.New("database")

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Vehicle{},
		&models.ActivityRecord{},
		&models.LegacyFuelLog{},
		&models.Alert{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Activity list for a user, newest first
	if !db.Migrator().HasIndex(&models.ActivityRecord{}, "idx_activities_user_date") {
		if err := db.Exec("CREATE INDEX idx_activities_user_date ON activities(user_id, date DESC)").Error; err != nil {
			log.Warnf("could not create index for activities: %v", err)
		}
	}

	// Unread alert counts
	if !db.Migrator().HasIndex(&models.Alert{}, "idx_alerts_user_read") {
		if err := db.Exec("CREATE INDEX idx_alerts_user_read ON alerts(user_id, is_read)").Error; err != nil {
			log.Warnf("could not create index for alerts: %v", err)
		}
	}

	return nil
}

// Ping checks that the database answers.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SeedData populates a demo vehicle with a few months of history for local
// development. It does nothing if the user already has vehicles.
func SeedData(db *gorm.DB, userID string) error {
	var count int64
	if err := db.Model(&models.Vehicle{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Infof("database already has data, skipping seed")
		return nil
	}

	now := time.Now().UTC()
	baselineAt := now.AddDate(0, -4, 0)
	vehicle := models.Vehicle{
		ID:                uuid.New().String(),
		UserID:            userID,
		Make:              "Toyota",
		Model:             "Corolla",
		Year:              2019,
		FuelType:          models.DefaultFuelType,
		Image:             models.DefaultVehicleImage,
		Odometer:          42000,
		OdometerUpdatedAt: &baselineAt,
		ServiceInterval:   5000,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vehicle).Error; err != nil {
			return err
		}

		distances := []float64{310, 295, 320, 280, 305, 315}
		amounts := []float64{10.2, 9.8, 10.6, 9.9, 10.1, 10.4}
		for i := range distances {
			distance, amount := distances[i], amounts[i]
			record := models.ActivityRecord{
				ID:        uuid.New().String(),
				VehicleID: vehicle.ID,
				UserID:    userID,
				Type:      models.ActivityTypeFuel,
				Date:      baselineAt.AddDate(0, 0, 14*(i+1)),
				Odometer:  &distance,
				Amount:    &amount,
				FuelType:  vehicle.FuelType,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		serviceOdo := vehicle.Odometer + 600
		service := models.ActivityRecord{
			ID:           uuid.New().String(),
			VehicleID:    vehicle.ID,
			UserID:       userID,
			Type:         models.ActivityTypeService,
			Date:         baselineAt.AddDate(0, 0, 20),
			Odometer:     &serviceOdo,
			ServiceTypes: models.StringSliceType{"Oil Change"},
			ServiceType:  "Oil Change",
		}
		return tx.Create(&service).Error
	})
	if err != nil {
		return fmt.Errorf("seed demo vehicle: %w", err)
	}

	log.Infof("database seeded with demo vehicle %s", vehicle.ID)
	return nil
}
