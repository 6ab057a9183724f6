package models

import "time"

// ChartPoint is one fill-up on the efficiency chart.
type ChartPoint struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Amount          float64   `json:"amount"`
	Efficiency      *float64  `json:"efficiency"`
	Distance        float64   `json:"distance"`
	SegmentFuelUsed *float64  `json:"segment_fuel_used"`
}

// AnalyticsStats are display-formatted totals; AverageEfficiency is null when
// there is nothing to average.
type AnalyticsStats struct {
	TotalDistance     string  `json:"total_distance"`
	TotalFuel         string  `json:"total_fuel"`
	AverageEfficiency *string `json:"average_efficiency"`
}

type AnalyticsResponse struct {
	VehicleID  string         `json:"vehicle_id"`
	Timeframe  string         `json:"timeframe"`
	WindowSize int            `json:"window_size"`
	ChartData  []ChartPoint   `json:"chart_data"`
	Stats      AnalyticsStats `json:"stats"`
}
