package repositories

import (
	"context"

	"gorm.io/gorm"

	"fueltrack-api/models"
)

// ActivityRepository reads and writes activity records. Lists come back in no
// particular order; callers sort for themselves.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).Find(&records).Error
	return records, err
}

// ListByVehicles groups the activities of several vehicles by vehicle id.
func (r *ActivityRepository) ListByVehicles(ctx context.Context, vehicleIDs []string) (map[string][]models.ActivityRecord, error) {
	grouped := make(map[string][]models.ActivityRecord, len(vehicleIDs))
	if len(vehicleIDs) == 0 {
		return grouped, nil
	}

	var records []models.ActivityRecord
	if err := r.db.WithContext(ctx).Where("vehicle_id IN ?", vehicleIDs).Find(&records).Error; err != nil {
		return nil, err
	}
	for _, rec := range records {
		grouped[rec.VehicleID] = append(grouped[rec.VehicleID], rec)
	}
	return grouped, nil
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID string) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error
	return records, err
}

func (r *ActivityRepository) Get(ctx context.Context, vehicleID, activityID string) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ? AND vehicle_id = ?", activityID, vehicleID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ActivityRepository) FindByLegacyID(ctx context.Context, legacyID string) (*models.ActivityRecord, error) {
	var record models.ActivityRecord
	if err := r.db.WithContext(ctx).First(&record, "legacy_id = ?", legacyID).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ActivityRepository) Create(ctx context.Context, record *models.ActivityRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Save writes every column of an existing record, including nil pointers.
func (r *ActivityRepository) Save(ctx context.Context, record *models.ActivityRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes one of the user's activities. It returns
// gorm.ErrRecordNotFound when nothing matched.
func (r *ActivityRepository) Delete(ctx context.Context, userID, activityID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", activityID, userID).Delete(&models.ActivityRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
