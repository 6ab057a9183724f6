package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fueltrack-api/calculations"
	"fueltrack-api/logger"
	"fueltrack-api/metrics"
	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

const reminderBatchSize = 100

// ReminderService raises service-due alerts for vehicles near or past their
// service interval.
type ReminderService struct {
	vehicles   *repositories.VehicleRepository
	activities *repositories.ActivityRepository
	alerts     *repositories.AlertRepository
	mailer     Mailer
	metrics    *metrics.Metrics
	log        logger.Logger

	dueSoon  float64
	cooldown time.Duration
	now      func() time.Time
}

// NewReminderService wires the reminder check. mailer may be nil, in which case
// only alerts are created.
func NewReminderService(vehicles *repositories.VehicleRepository, activities *repositories.ActivityRepository, alerts *repositories.AlertRepository, mailer Mailer, m *metrics.Metrics, dueSoon float64, cooldown time.Duration) *ReminderService {
	return &ReminderService{
		vehicles:   vehicles,
		activities: activities,
		alerts:     alerts,
		mailer:     mailer,
		metrics:    m,
		log:        logger.New("reminders"),
		dueSoon:    dueSoon,
		cooldown:   cooldown,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Run checks every vehicle once and returns how many reminders were raised.
// Failures for one vehicle are logged and do not stop the others.
func (s *ReminderService) Run(ctx context.Context) (int, error) {
	raised := 0
	err := s.vehicles.ListAll(ctx, reminderBatchSize, func(batch []models.Vehicle) error {
		for _, v := range batch {
			if err := ctx.Err(); err != nil {
				return err
			}
			ok, err := s.check(ctx, v)
			if err != nil {
				s.metrics.Reminder(metrics.ResultFailed)
				s.log.Errorf("service reminder for vehicle %s: %v", v.ID, err)
				continue
			}
			if ok {
				raised++
			}
		}
		return nil
	})
	if err != nil {
		return raised, fmt.Errorf("walk vehicles: %w", err)
	}
	return raised, nil
}

func (s *ReminderService) check(ctx context.Context, v models.Vehicle) (bool, error) {
	now := s.now()
	if v.LastReminderAt != nil && now.Sub(*v.LastReminderAt) < s.cooldown {
		return false, nil
	}

	records, err := s.activities.ListByVehicle(ctx, v.ID)
	if err != nil {
		return false, fmt.Errorf("list activities: %w", err)
	}
	current := calculations.CurrentOdometer(v.Baseline(), models.Readings(records))
	status := calculations.Maintenance(current, models.ServiceReadings(records), v.ServiceInterval, s.dueSoon)
	if !status.NeedsAttention() {
		return false, nil
	}

	name := v.DisplayName()
	alert := &models.Alert{
		ID:        uuid.New().String(),
		UserID:    v.UserID,
		VehicleID: v.ID,
		Type:      models.AlertTypeServiceDue,
		Message:   models.ServiceDueMessage(name, status.DueIn),
	}
	if err := s.alerts.Create(ctx, alert); err != nil {
		return false, fmt.Errorf("create alert: %w", err)
	}

	if s.mailer != nil && v.OwnerEmail != "" {
		if err := s.mailer.SendServiceReminder(v.OwnerEmail, name, status); err != nil {
			// The alert is already stored; the mail is retried after the cooldown.
			s.log.Warnf("reminder mail for vehicle %s: %v", v.ID, err)
		}
	}

	if err := s.vehicles.MarkReminded(ctx, v.ID, now); err != nil {
		return false, fmt.Errorf("stamp reminder: %w", err)
	}
	s.metrics.Reminder(metrics.ResultSent)
	return true, nil
}
