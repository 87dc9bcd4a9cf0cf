package repositoryImp

import (
	"gorm.io/gorm"

	"cropcare/entities"
	"cropcare/pkg/farm/repository"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(f *entities.Farm) error { return r.db.Create(f).Error }

func (r *farmRepo) FindByID(id uint) (*entities.Farm, error) {
	var f entities.Farm
	if err := r.db.First(&f, "farm_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *farmRepo) ByUser(userID string) ([]entities.Farm, error) {
	var out []entities.Farm
	err := r.db.Where("user_id = ?", userID).Order("farm_id ASC").Find(&out).Error
	return out, err
}

func (r *farmRepo) All() ([]entities.Farm, error) {
	var out []entities.Farm
	err := r.db.Order("farm_id ASC").Find(&out).Error
	return out, err
}

func (r *farmRepo) ActiveCropArea(farmID uint) (float64, error) {
	var total *float64
	err := r.db.Model(&entities.Crop{}).
		Where("farm_id = ? AND status = ?", farmID, entities.CropStatusActive).
		Select("SUM(area_acres)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}
