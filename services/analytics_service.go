package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fueltrack-api/calculations"
	"fueltrack-api/metrics"
	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

const (
	TimeframeAll       = "all"
	TimeframeYear      = "year"
	TimeframeSixMonths = "6months"
	TimeframeQuarter   = "3months"
)

type AnalyticsService struct {
	vehicles      *repositories.VehicleRepository
	activities    *repositories.ActivityRepository
	metrics       *metrics.Metrics
	defaultWindow int
	now           func() time.Time
}

func NewAnalyticsService(vehicles *repositories.VehicleRepository, activities *repositories.ActivityRepository, m *metrics.Metrics, defaultWindow int) *AnalyticsService {
	return &AnalyticsService{
		vehicles:      vehicles,
		activities:    activities,
		metrics:       m,
		defaultWindow: defaultWindow,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Cutoff returns the earliest date included in the timeframe, or nil for
// "all".
func Cutoff(timeframe string, now time.Time) (*time.Time, error) {
	var cutoff time.Time
	switch timeframe {
	case "", TimeframeAll:
		return nil, nil
	case TimeframeYear:
		cutoff = now.AddDate(-1, 0, 0)
	case TimeframeSixMonths:
		cutoff = now.AddDate(0, -6, 0)
	case TimeframeQuarter:
		cutoff = now.AddDate(0, -3, 0)
	default:
		return nil, invalidf("unknown timeframe %q", timeframe)
	}
	return &cutoff, nil
}

// Efficiency builds the efficiency chart and totals for one vehicle from its
// fuel records inside the timeframe. window <= 0 uses the configured default.
func (s *AnalyticsService) Efficiency(ctx context.Context, userID, vehicleID, timeframe string, window int) (*models.AnalyticsResponse, error) {
	if timeframe == "" {
		timeframe = TimeframeAll
	}
	cutoff, err := Cutoff(timeframe, s.now())
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = s.defaultWindow
	}

	if _, err := s.vehicles.Get(ctx, userID, vehicleID); err != nil {
		return nil, lookupErr("vehicle", err)
	}
	records, err := s.activities.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	entries := make([]calculations.Entry, 0, len(records))
	for _, e := range models.FuelEntries(records) {
		if cutoff != nil && e.Date.Before(*cutoff) {
			continue
		}
		entries = append(entries, e)
	}

	agg := calculations.AggregateWindow(entries, window)
	s.metrics.Aggregation("analytics")

	resp := &models.AnalyticsResponse{
		VehicleID:  vehicleID,
		Timeframe:  timeframe,
		WindowSize: window,
		ChartData:  make([]models.ChartPoint, 0, len(agg.Points)),
		Stats: models.AnalyticsStats{
			TotalDistance: formatTenth(agg.TotalDistance),
			TotalFuel:     formatTenth(agg.TotalFuel),
		},
	}
	if agg.Average != nil {
		avg := formatTenth(*agg.Average)
		resp.Stats.AverageEfficiency = &avg
	}

	for _, p := range agg.Points {
		point := models.ChartPoint{
			ID:         p.ID,
			Date:       p.Date,
			Amount:     p.Amount,
			Efficiency: p.Efficiency,
			Distance:   calculations.RoundToTenth(p.Distance),
		}
		if p.Amount != 0 {
			used := calculations.RoundTo(p.Amount, 3)
			point.SegmentFuelUsed = &used
		}
		resp.ChartData = append(resp.ChartData, point)
	}
	return resp, nil
}

func formatTenth(v float64) string {
	return strconv.FormatFloat(calculations.RoundToTenth(v), 'f', 1, 64)
}
