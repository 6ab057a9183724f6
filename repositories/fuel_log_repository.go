package repositories

import (
	"context"

	"gorm.io/gorm"

	"fueltrack-api/models"
)

// FuelLogRepository gives access to the legacy fuel log table, which is only
// read by the migration.
type FuelLogRepository struct {
	db *gorm.DB
}

func NewFuelLogRepository(db *gorm.DB) *FuelLogRepository {
	return &FuelLogRepository{db: db}
}

func (r *FuelLogRepository) ListByUser(ctx context.Context, userID string) ([]models.LegacyFuelLog, error) {
	var logs []models.LegacyFuelLog
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&logs).Error
	return logs, err
}

func (r *FuelLogRepository) Create(ctx context.Context, log *models.LegacyFuelLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *FuelLogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.LegacyFuelLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
