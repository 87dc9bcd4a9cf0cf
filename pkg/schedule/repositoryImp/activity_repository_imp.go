package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cropcare/entities"
	"cropcare/pkg/schedule/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

// Create relies on the uniq_crop_type_date index: a concurrent duplicate
// insert resolves to DO NOTHING instead of an error, which keeps repeated
// template expansion idempotent without a separate transaction.
func (r *activityRepo) Create(a *entities.Activity) (bool, error) {
	a.ScheduledDate = entities.Midnight(a.ScheduledDate)
	if a.Status == "" {
		a.Status = entities.ActivityStatusPending
	}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "crop_id"}, {Name: "activity_type"}, {Name: "scheduled_date"}},
		DoNothing: true,
	}).Create(a)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *activityRepo) ExistsFor(cropID uint, activityType string, scheduledDate time.Time) (bool, error) {
	var n int64
	err := r.db.Model(&entities.Activity{}).
		Where("crop_id = ? AND activity_type = ? AND scheduled_date = ?",
			cropID, activityType, entities.Midnight(scheduledDate)).
		Count(&n).Error
	return n > 0, err
}

func (r *activityRepo) ListByCrop(cropID uint) ([]entities.Activity, error) {
	var out []entities.Activity
	err := r.db.Where("crop_id = ?", cropID).Order("scheduled_date ASC").Find(&out).Error
	return out, err
}

func (r *activityRepo) LastCompletedIrrigation(cropID uint) (*entities.Activity, error) {
	var a entities.Activity
	err := r.db.
		Where("crop_id = ? AND activity_type = ? AND status = ?",
			cropID, "irrigation", entities.ActivityStatusCompleted).
		Order("completed_date DESC").
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Complete moves pending -> completed. The status guard in the WHERE clause
// makes terminal states sticky even under concurrent updates.
func (r *activityRepo) Complete(activityID uint, completedDate time.Time, notes string) error {
	upd := map[string]any{
		"status":         entities.ActivityStatusCompleted,
		"completed_date": entities.Midnight(completedDate),
	}
	if notes != "" {
		upd["notes"] = notes
	}
	return r.transition(activityID, upd)
}

func (r *activityRepo) Skip(activityID uint) error {
	return r.transition(activityID, map[string]any{"status": entities.ActivityStatusSkipped})
}

func (r *activityRepo) transition(activityID uint, upd map[string]any) error {
	res := r.db.Model(&entities.Activity{}).
		Where("activity_id = ? AND status = ?", activityID, entities.ActivityStatusPending).
		Updates(upd)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.Model(&entities.Activity{}).Where("activity_id = ?", activityID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return repository.ErrTerminalState
	}
	return nil
}

func (r *activityRepo) CompletedIrrigationForFarm(farmID uint, since time.Time) ([]entities.Activity, error) {
	var out []entities.Activity
	err := r.db.
		Joins("JOIN crops ON crops.crop_id = activities.crop_id").
		Where("crops.farm_id = ? AND activities.activity_type = ? AND activities.status = ? AND activities.completed_date >= ?",
			farmID, "irrigation", entities.ActivityStatusCompleted, entities.Midnight(since)).
		Find(&out).Error
	return out, err
}
