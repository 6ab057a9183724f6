package calculations

import (
	"sort"
	"time"
)

// DefaultWindow is the number of most recent fill-ups averaged for the
// "current" efficiency of a vehicle.
const DefaultWindow = 5

// Entry is the part of an activity record the aggregator reads. Odometer is the
// distance covered since the previous fill-up and Amount the fuel used over it;
// either may be missing.
type Entry struct {
	ID       string
	Date     time.Time
	Odometer *float64
	Amount   *float64
}

// EfficiencyPoint is one fill-up inside the aggregation window.
type EfficiencyPoint struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Distance   float64   `json:"distance"`
	Efficiency *float64  `json:"efficiency"`
}

// AggregateResult is the trend series and summary for one window.
type AggregateResult struct {
	Average       *float64          `json:"average"`
	TotalDistance float64           `json:"total_distance"`
	TotalFuel     float64           `json:"total_fuel"`
	Points        []EfficiencyPoint `json:"points"`
}

// AggregateDefaultWindow is AggregateWindow with DefaultWindow.
func AggregateDefaultWindow(entries []Entry) AggregateResult {
	return AggregateWindow(entries, DefaultWindow)
}

// AggregateWindow picks the windowSize most recent entries by date and reduces
// them into per-entry points, running totals and a fuel-weighted average.
//
// The window is chosen by date position before validity filtering: an entry
// with a missing or non-positive amount still takes one of the slots and is
// dropped, not replaced by an older entry. Entries with equal dates keep their
// input order. The input slice is not modified.
func AggregateWindow(entries []Entry, windowSize int) AggregateResult {
	result := AggregateResult{Points: []EfficiencyPoint{}}
	if len(entries) == 0 {
		return result
	}
	if windowSize < 1 {
		windowSize = 1
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > windowSize {
		sorted = sorted[len(sorted)-windowSize:]
	}

	for _, e := range sorted {
		distance, fuelUsed, ok := e.values()
		if !ok {
			continue
		}
		result.TotalDistance += distance
		result.TotalFuel += fuelUsed
		result.Points = append(result.Points, EfficiencyPoint{
			ID:         e.ID,
			Date:       e.Date,
			Amount:     fuelUsed,
			Distance:   distance,
			Efficiency: EfficiencyPtr(distance, fuelUsed),
		})
	}

	result.Average = EfficiencyPtr(result.TotalDistance, result.TotalFuel)
	return result
}

func (e Entry) values() (distance, fuelUsed float64, ok bool) {
	if e.Odometer == nil || e.Amount == nil {
		return 0, 0, false
	}
	distance, fuelUsed = *e.Odometer, *e.Amount
	if !isFinite(distance) || !isFinite(fuelUsed) || fuelUsed <= 0 {
		return 0, 0, false
	}
	return distance, fuelUsed, true
}
