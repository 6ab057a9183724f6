package calculations

import (
	"math"
	"time"
)

// DefaultServiceInterval is the distance between scheduled services for a
// vehicle that has not configured its own.
const DefaultServiceInterval = 5000

type ServiceStatus string

const (
	StatusOnTrack ServiceStatus = "On Track"
	StatusDueSoon ServiceStatus = "Due Soon"
	StatusOverdue ServiceStatus = "Overdue"
)

// MaintenanceStatus describes how far a vehicle is from its next service.
type MaintenanceStatus struct {
	Status               ServiceStatus `json:"status"`
	LastServiceAt        *time.Time    `json:"last_service_at"`
	LastServiceOdometer  *float64      `json:"last_service_odometer"`
	DistanceSinceService float64       `json:"distance_since_service"`
	DueIn                float64       `json:"due_in"`
	ServiceProgress      float64       `json:"service_progress"`
}

// Maintenance computes the service status from the current odometer and the
// vehicle's service records. Only services with a recorded odometer count. A
// vehicle with no such service is on track with a full interval ahead.
func Maintenance(current float64, services []Reading, interval, dueSoon float64) MaintenanceStatus {
	if interval <= 0 {
		interval = DefaultServiceInterval
	}

	var last *Reading
	for i := range services {
		s := services[i]
		if !hasOdometer(s.Odometer) {
			continue
		}
		if last == nil || !s.Date.Before(last.Date) {
			last = &services[i]
		}
	}

	status := MaintenanceStatus{
		Status:          StatusOnTrack,
		DueIn:           interval,
		ServiceProgress: 100,
	}
	if last == nil {
		return status
	}

	date := last.Date
	odo := *last.Odometer
	status.LastServiceAt = &date
	status.LastServiceOdometer = &odo
	status.DistanceSinceService = math.Max(0, current-odo)
	status.DueIn = interval - status.DistanceSinceService
	status.ServiceProgress = RoundTo(math.Min(100, math.Max(0, status.DueIn/interval*100)), 0)

	switch {
	case status.DueIn <= 0:
		status.Status = StatusOverdue
	case status.DueIn <= dueSoon:
		status.Status = StatusDueSoon
	}
	return status
}

// NeedsAttention reports whether a reminder should be raised for the status.
func (m MaintenanceStatus) NeedsAttention() bool {
	return m.Status == StatusDueSoon || m.Status == StatusOverdue
}
