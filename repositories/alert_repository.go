package repositories

import (
	"context"

	"gorm.io/gorm"

	"fueltrack-api/models"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	return r.db.WithContext(ctx).Create(alert).Error
}

// List returns a page of the user's alerts, newest first, and the total count.
func (r *AlertRepository) List(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]models.Alert, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Alert{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var alerts []models.Alert
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&alerts).Error
	return alerts, total, err
}

func (r *AlertRepository) Stats(ctx context.Context, userID string) (models.AlertStats, error) {
	var unread, total int64
	if err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return models.AlertStats{}, err
	}
	if err := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return models.AlertStats{}, err
	}
	return models.AlertStats{UnreadCount: int(unread), TotalCount: int(total)}, nil
}

func (r *AlertRepository) MarkRead(ctx context.Context, userID, alertID string) error {
	var alert models.Alert
	if err := r.db.WithContext(ctx).First(&alert, "id = ? AND user_id = ?", alertID, userID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&alert).Update("is_read", true).Error
}

func (r *AlertRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Alert{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}
