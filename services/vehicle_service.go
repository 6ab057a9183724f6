package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fueltrack-api/calculations"
	"fueltrack-api/logger"
	"fueltrack-api/metrics"
	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

type VehicleService struct {
	vehicles   *repositories.VehicleRepository
	activities *repositories.ActivityRepository
	metrics    *metrics.Metrics
	log        logger.Logger

	window  int
	dueSoon float64
	now     func() time.Time
}

// NewVehicleService builds the dashboard service. window is the number of
// recent fill-ups behind the efficiency badge; dueSoon is the distance before
// the service interval at which a vehicle is flagged.
func NewVehicleService(vehicles *repositories.VehicleRepository, activities *repositories.ActivityRepository, m *metrics.Metrics, window int, dueSoon float64) *VehicleService {
	return &VehicleService{
		vehicles:   vehicles,
		activities: activities,
		metrics:    m,
		log:        logger.New("vehicle-service"),
		window:     window,
		dueSoon:    dueSoon,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Cards returns every vehicle of the user with its derived dashboard values.
func (s *VehicleService) Cards(ctx context.Context, userID string) ([]models.VehicleCard, error) {
	vehicles, err := s.vehicles.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		ids = append(ids, v.ID)
	}
	grouped, err := s.activities.ListByVehicles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	cards := make([]models.VehicleCard, 0, len(vehicles))
	for _, v := range vehicles {
		cards = append(cards, s.card(v, grouped[v.ID]))
	}
	return cards, nil
}

func (s *VehicleService) Card(ctx context.Context, userID, vehicleID string) (*models.VehicleCard, error) {
	vehicle, err := s.vehicles.Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, lookupErr("vehicle", err)
	}
	records, err := s.activities.ListByVehicle(ctx, vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	card := s.card(*vehicle, records)
	return &card, nil
}

func (s *VehicleService) card(v models.Vehicle, records []models.ActivityRecord) models.VehicleCard {
	current := calculations.CurrentOdometer(v.Baseline(), models.Readings(records))
	agg := calculations.AggregateWindow(models.FuelEntries(records), s.window)
	s.metrics.Aggregation("dashboard")

	return models.VehicleCard{
		Vehicle:           v,
		Name:              v.DisplayName(),
		CurrentOdometer:   current,
		AverageEfficiency: agg.Average,
		Maintenance:       calculations.Maintenance(current, models.ServiceReadings(records), v.ServiceInterval, s.dueSoon),
	}
}

func (s *VehicleService) Create(ctx context.Context, userID, email string, req models.CreateVehicleRequest) (*models.Vehicle, error) {
	if strings.TrimSpace(req.Make) == "" || strings.TrimSpace(req.Model) == "" {
		return nil, invalidf("make and model are required")
	}

	vehicle := &models.Vehicle{
		ID:              uuid.New().String(),
		UserID:          userID,
		OwnerEmail:      email,
		Make:            strings.TrimSpace(req.Make),
		Model:           strings.TrimSpace(req.Model),
		Year:            req.Year,
		VIN:             strings.TrimSpace(req.VIN),
		FuelType:        models.DefaultFuelType,
		Image:           models.DefaultVehicleImage,
		ServiceInterval: calculations.DefaultServiceInterval,
	}
	if req.FuelType != "" {
		vehicle.FuelType = req.FuelType
	}
	if req.ServiceInterval != nil {
		vehicle.ServiceInterval = *req.ServiceInterval
	}

	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	s.log.Infof("vehicle %s created for user %s", vehicle.ID, userID)
	return vehicle, nil
}

// Update applies the non-nil fields of req. Setting the odometer counts as a
// manual edit and restamps odometer_updated_at, so readings logged before now
// no longer raise the displayed value.
func (s *VehicleService) Update(ctx context.Context, userID, vehicleID string, req models.UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.Get(ctx, userID, vehicleID)
	if err != nil {
		return nil, lookupErr("vehicle", err)
	}

	updates := map[string]interface{}{}
	if req.Make != nil {
		updates["make"] = strings.TrimSpace(*req.Make)
	}
	if req.Model != nil {
		updates["model"] = strings.TrimSpace(*req.Model)
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.VIN != nil {
		updates["vin"] = strings.TrimSpace(*req.VIN)
	}
	if req.FuelType != nil {
		updates["fuel_type"] = *req.FuelType
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.ServiceInterval != nil {
		updates["service_interval"] = *req.ServiceInterval
	}
	if req.Odometer != nil {
		if *req.Odometer < 0 {
			return nil, invalidf("odometer cannot be negative")
		}
		updates["odometer"] = *req.Odometer
		updates["odometer_updated_at"] = s.now()
	}
	if len(updates) == 0 {
		return vehicle, nil
	}

	if err := s.vehicles.Update(ctx, vehicle, updates); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	return s.vehicles.Get(ctx, userID, vehicleID)
}

func (s *VehicleService) Delete(ctx context.Context, userID, vehicleID string) error {
	if err := s.vehicles.DeleteWithActivities(ctx, userID, vehicleID); err != nil {
		return lookupErr("vehicle", err)
	}
	s.log.Infof("vehicle %s deleted with its activities", vehicleID)
	return nil
}
