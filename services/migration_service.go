package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fueltrack-api/logger"
	"fueltrack-api/metrics"
	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

const (
	StageCopy   = "copy"
	StageDelete = "delete"
)

var legacyDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// MigrationService moves rows of the old fuel log table into activities.
type MigrationService struct {
	vehicles   *repositories.VehicleRepository
	activities *repositories.ActivityRepository
	fuelLogs   *repositories.FuelLogRepository
	metrics    *metrics.Metrics
	log        logger.Logger
}

func NewMigrationService(vehicles *repositories.VehicleRepository, activities *repositories.ActivityRepository, fuelLogs *repositories.FuelLogRepository, m *metrics.Metrics) *MigrationService {
	return &MigrationService{
		vehicles:   vehicles,
		activities: activities,
		fuelLogs:   fuelLogs,
		metrics:    m,
		log:        logger.New("migration"),
	}
}

// MigrateFuelLogs copies every legacy log of the user to a Fuel activity and
// deletes the legacy row only once the copy is stored. A log whose copy already
// exists from an earlier interrupted run is not copied again. Per-log failures
// go into the report; only failing to list the legacy logs is an error.
func (s *MigrationService) MigrateFuelLogs(ctx context.Context, userID string) (*models.MigrationReport, error) {
	logs, err := s.fuelLogs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list legacy fuel logs: %w", err)
	}

	report := &models.MigrationReport{Total: len(logs), Failed: []models.MigrationFailure{}}
	for _, legacy := range logs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if stage, err := s.migrateOne(ctx, userID, legacy); err != nil {
			s.metrics.Migration(metrics.ResultFailed)
			s.log.Warnf("legacy fuel log %s failed at %s: %v", legacy.ID, stage, err)
			report.Failed = append(report.Failed, models.MigrationFailure{ID: legacy.ID, Stage: stage, Error: err.Error()})
			continue
		}
		s.metrics.Migration(metrics.ResultMigrated)
		report.Migrated++
	}

	s.log.Infof("migrated %d of %d legacy fuel logs for user %s", report.Migrated, report.Total, userID)
	return report, nil
}

func (s *MigrationService) migrateOne(ctx context.Context, userID string, legacy models.LegacyFuelLog) (string, error) {
	_, err := s.activities.FindByLegacyID(ctx, legacy.ID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if _, err := s.vehicles.Get(ctx, userID, legacy.VehicleID); err != nil {
			return StageCopy, lookupErr("vehicle", err)
		}
		record := LegacyToActivity(legacy)
		if err := s.activities.Create(ctx, &record); err != nil {
			return StageCopy, fmt.Errorf("create activity: %w", err)
		}
	case err != nil:
		return StageCopy, fmt.Errorf("look up copy: %w", err)
	}

	if err := s.fuelLogs.Delete(ctx, legacy.ID); err != nil {
		return StageDelete, fmt.Errorf("delete legacy log: %w", err)
	}
	return "", nil
}

// LegacyToActivity converts a legacy fuel log. Blank or malformed numbers
// become absent; an unparseable date falls back to the row's creation time.
func LegacyToActivity(legacy models.LegacyFuelLog) models.ActivityRecord {
	legacyID := legacy.ID
	return models.ActivityRecord{
		ID:           uuid.New().String(),
		VehicleID:    legacy.VehicleID,
		UserID:       legacy.UserID,
		Type:         models.ActivityTypeFuel,
		Date:         parseLegacyDate(legacy.Date, legacy.CreatedAt),
		Odometer:     parseLegacyNumber(legacy.Odometer),
		Amount:       parseLegacyNumber(legacy.Amount),
		PricePerUnit: parseLegacyNumber(legacy.PricePerUnit),
		TotalCost:    parseLegacyNumber(legacy.TotalCost),
		Notes:        strings.TrimSpace(legacy.Notes),
		LegacyID:     &legacyID,
	}
}

func parseLegacyNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(v) {
		return nil
	}
	return &v
}

func parseLegacyDate(raw string, fallback time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range legacyDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return fallback.UTC()
}
