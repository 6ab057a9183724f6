package services

import (
	"context"
	"fmt"

	"fueltrack-api/models"
	"fueltrack-api/repositories"
)

const (
	defaultAlertLimit = 20
	maxAlertLimit     = 50
)

type AlertService struct {
	alerts *repositories.AlertRepository
}

func NewAlertService(alerts *repositories.AlertRepository) *AlertService {
	return &AlertService{alerts: alerts}
}

// List returns one page of the user's alerts. Out-of-range page and limit
// values are clamped.
func (s *AlertService) List(ctx context.Context, userID string, page, limit int, unreadOnly bool) (*models.PaginatedAlerts, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultAlertLimit
	}
	if limit > maxAlertLimit {
		limit = maxAlertLimit
	}

	alerts, total, err := s.alerts.List(ctx, userID, unreadOnly, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &models.PaginatedAlerts{
		Alerts:     alerts,
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    page < totalPages,
		TotalPages: totalPages,
	}, nil
}

func (s *AlertService) Stats(ctx context.Context, userID string) (models.AlertStats, error) {
	stats, err := s.alerts.Stats(ctx, userID)
	if err != nil {
		return stats, fmt.Errorf("alert stats: %w", err)
	}
	return stats, nil
}

func (s *AlertService) MarkRead(ctx context.Context, userID, alertID string) error {
	if err := s.alerts.MarkRead(ctx, userID, alertID); err != nil {
		return lookupErr("alert", err)
	}
	return nil
}

func (s *AlertService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.alerts.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark alerts read: %w", err)
	}
	return n, nil
}
