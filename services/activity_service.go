package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"fueltrack-api/calculations"
	"fueltrack-api/logger"
	"fueltrack-api/metrics"
	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

// ActivityFilter selects activities for the cross-vehicle list. Type is
// "All", "Fuel" or "Service"; empty means All.
type ActivityFilter struct {
	Type   string
	Search string
}

type ActivityService struct {
	vehicles   *repositories.VehicleRepository
	activities *repositories.ActivityRepository
	metrics    *metrics.Metrics
	log        logger.Logger
}

func NewActivityService(vehicles *repositories.VehicleRepository, activities *repositories.ActivityRepository, m *metrics.Metrics) *ActivityService {
	return &ActivityService{
		vehicles:   vehicles,
		activities: activities,
		metrics:    m,
		log:        logger.New("activity-service"),
	}
}

// List returns the activities of all the user's vehicles, newest first.
func (s *ActivityService) List(ctx context.Context, userID string, filter ActivityFilter) ([]models.ActivityListItem, error) {
	wantType, err := parseTypeFilter(filter.Type)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.vehicles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	names := make(map[string]string, len(vehicles))
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		names[v.ID] = v.DisplayName()
		ids = append(ids, v.ID)
	}

	grouped, err := s.activities.ListByVehicles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	items := make([]models.ActivityListItem, 0)
	for _, id := range ids {
		for _, rec := range grouped[id] {
			if wantType != "" && rec.EffectiveType() != wantType {
				continue
			}
			item := models.ActivityListItem{ActivityRecord: rec, VehicleName: names[id]}
			item.Type = rec.EffectiveType()
			if term != "" && !strings.Contains(searchText(item), term) {
				continue
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
	return items, nil
}

func parseTypeFilter(v string) (models.ActivityType, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "all":
		return "", nil
	case "fuel":
		return models.ActivityTypeFuel, nil
	case "service":
		return models.ActivityTypeService, nil
	default:
		return "", invalidf("unknown activity type %q", v)
	}
}

func searchText(item models.ActivityListItem) string {
	parts := []string{
		item.VehicleName,
		string(item.Type),
		item.ServiceType,
		strings.Join(item.ServiceTypes, " "),
		item.Notes,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ListForVehicle returns one vehicle's activities, newest first.
func (s *ActivityService) ListForVehicle(ctx context.Context, userID, vehicleID string) ([]models.ActivityRecord, error) {
	if _, err := s.vehicles.Get(ctx, userID, vehicleID); err != nil {
		return nil, lookupErr("vehicle", err)
	}
	records, err := s.activities.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	for i := range records {
		records[i].Type = records[i].EffectiveType()
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

// Add logs a new activity for the vehicle and then tries to move the vehicle's
// stored odometer forward. The odometer update never fails the call.
func (s *ActivityService) Add(ctx context.Context, userID, vehicleID string, req models.ActivityRequest) (*models.ActivityRecord, error) {
	vehicle, err := s.vehicles.Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, lookupErr("vehicle", err)
	}

	record := &models.ActivityRecord{
		ID:        uuid.New().String(),
		VehicleID: vehicle.ID,
		UserID:    userID,
	}
	if err := applyRequest(record, vehicle, req); err != nil {
		return nil, err
	}

	if err := s.activities.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	s.writeBack(ctx, vehicle, record)
	return record, nil
}

func (s *ActivityService) writeBack(ctx context.Context, vehicle *models.Vehicle, record *models.ActivityRecord) {
	if _, ok := calculations.AdvanceOdometer(vehicle.Baseline(), record.Reading()); !ok {
		s.metrics.WriteBack(metrics.ResultSkipped)
		return
	}

	advanced, err := s.vehicles.AdvanceOdometer(ctx, vehicle.ID, *record.Odometer, record.Date)
	switch {
	case err != nil:
		s.metrics.WriteBack(metrics.ResultFailed)
		s.log.Warnf("odometer write-back for vehicle %s failed: %v", vehicle.ID, err)
	case advanced:
		s.metrics.WriteBack(metrics.ResultAdvanced)
		s.log.Debugf("vehicle %s odometer advanced to %.1f", vehicle.ID, *record.Odometer)
	default:
		// A concurrent writer got there first with a higher reading.
		s.metrics.WriteBack(metrics.ResultSkipped)
	}
}

// Update replaces the editable fields of an existing activity.
func (s *ActivityService) Update(ctx context.Context, userID, vehicleID, activityID string, req models.ActivityRequest) (*models.ActivityRecord, error) {
	vehicle, err := s.vehicles.Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, lookupErr("vehicle", err)
	}
	record, err := s.activities.Get(ctx, vehicle.ID, activityID)
	if err != nil {
		return nil, lookupErr("activity", err)
	}

	if err := applyRequest(record, vehicle, req); err != nil {
		return nil, err
	}
	if err := s.activities.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("update activity: %w", err)
	}
	return record, nil
}

func (s *ActivityService) Delete(ctx context.Context, userID, vehicleID, activityID string) error {
	if _, err := s.activities.Get(ctx, vehicleID, activityID); err != nil {
		return lookupErr("activity", err)
	}
	if err := s.activities.Delete(ctx, userID, activityID); err != nil {
		return lookupErr("activity", err)
	}
	return nil
}

// BulkDelete deletes each id independently and reports per-id outcomes.
func (s *ActivityService) BulkDelete(ctx context.Context, userID string, ids []string) []models.BulkDeleteResult {
	results := make([]models.BulkDeleteResult, 0, len(ids))
	for _, id := range ids {
		res := models.BulkDeleteResult{ID: id}
		if err := s.activities.Delete(ctx, userID, id); err != nil {
			err = lookupErr("activity", err)
			if !errors.Is(err, ErrNotFound) {
				s.log.Errorf("bulk delete of activity %s: %v", id, err)
			}
			res.Error = err.Error()
		} else {
			res.Deleted = true
		}
		results = append(results, res)
	}
	return results
}

// applyRequest validates req and copies it onto record.
func applyRequest(record *models.ActivityRecord, vehicle *models.Vehicle, req models.ActivityRequest) error {
	activityType := req.Type
	if activityType == "" {
		activityType = models.ActivityTypeFuel
	}
	if activityType != models.ActivityTypeFuel && activityType != models.ActivityTypeService {
		return invalidf("unknown activity type %q", req.Type)
	}
	if req.Date == nil || req.Date.IsZero() {
		return invalidf("date is required")
	}
	if req.Odometer != nil && (*req.Odometer < 0 || !finite(*req.Odometer)) {
		return invalidf("odometer must be a non-negative number")
	}

	record.Type = activityType
	record.Date = req.Date.UTC()
	record.Odometer = req.Odometer
	record.Notes = strings.TrimSpace(req.Notes)
	record.TotalCost = req.TotalCost
	record.Amount = nil
	record.PricePerUnit = nil
	record.FuelType = ""
	record.ServiceTypes = nil
	record.ServiceType = ""

	switch activityType {
	case models.ActivityTypeFuel:
		if req.Amount == nil || !finite(*req.Amount) || *req.Amount <= 0 {
			return invalidf("amount must be greater than 0 for a fuel activity")
		}
		record.Amount = req.Amount
		record.PricePerUnit = req.PricePerUnit
		record.FuelType = vehicle.FuelType
		if record.FuelType == "" {
			record.FuelType = models.DefaultFuelType
		}
		if record.TotalCost == nil && req.PricePerUnit != nil {
			cost := calculations.RoundTo(*req.Amount**req.PricePerUnit, 2)
			record.TotalCost = &cost
		}
	case models.ActivityTypeService:
		types := serviceTypes(req.ServiceTypes, req.CustomServiceType)
		if len(types) == 0 {
			return invalidf("at least one service type is required")
		}
		record.ServiceTypes = models.StringSliceType(types)
		record.ServiceType = strings.Join(types, ", ")
	}
	return nil
}

// serviceTypes drops "Other" and blanks, appending the custom type in place of
// "Other" when one is given.
func serviceTypes(selected []string, custom string) []string {
	custom = strings.TrimSpace(custom)
	types := make([]string, 0, len(selected)+1)
	other := false
	for _, t := range selected {
		t = strings.TrimSpace(t)
		switch {
		case t == "":
		case t == "Other":
			other = true
		default:
			types = append(types, t)
		}
	}
	if other && custom != "" {
		types = append(types, custom)
	}
	return types
}

// ServiceTypeCatalogue is the list offered to clients when logging a service.
func ServiceTypeCatalogue() []string {
	out := make([]string, len(models.ServiceTypes))
	copy(out, models.ServiceTypes)
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
