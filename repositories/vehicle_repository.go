package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fueltrack-api/models"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// ListByUser returns the user's vehicles in creation order.
func (r *VehicleRepository) ListByUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&vehicles).Error
	return vehicles, err
}

// ListAll walks every vehicle in batches, for background jobs.
func (r *VehicleRepository) ListAll(ctx context.Context, batchSize int, fn func([]models.Vehicle) error) error {
	var batch []models.Vehicle
	return r.db.WithContext(ctx).FindInBatches(&batch, batchSize, func(tx *gorm.DB, _ int) error {
		return fn(batch)
	}).Error
}

// Get returns gorm.ErrRecordNotFound when the vehicle does not exist or belongs
// to someone else.
func (r *VehicleRepository) Get(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ? AND user_id = ?", vehicleID, userID).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(vehicle).Updates(updates).Error
}

// DeleteWithActivities removes the vehicle and its activity log together.
func (r *VehicleRepository) DeleteWithActivities(ctx context.Context, userID, vehicleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", vehicleID, userID).Delete(&models.Vehicle{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("vehicle_id = ?", vehicleID).Delete(&models.ActivityRecord{}).Error; err != nil {
			return err
		}
		return tx.Where("vehicle_id = ?", vehicleID).Delete(&models.Alert{}).Error
	})
}

// AdvanceOdometer raises the stored odometer to reading if it is higher and the
// reading is dated after the last manual edit. The check and the write are one
// statement, so of two concurrent readings the higher one always wins.
// odometer_updated_at is left unchanged.
func (r *VehicleRepository) AdvanceOdometer(ctx context.Context, vehicleID string, reading float64, date time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ? AND odometer < ?", vehicleID, reading).
		Where("odometer_updated_at IS NULL OR odometer_updated_at < ?", date).
		Update("odometer", reading)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *VehicleRepository) MarkReminded(ctx context.Context, vehicleID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("id = ?", vehicleID).
		UpdateColumn("last_reminder_at", at).Error
}
