package repositoryImp

import (
	"gorm.io/gorm"

	"cropcare/entities"
	"cropcare/pkg/crop/repository"
)

type cropRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CropRepository { return &cropRepo{db} }

func (r *cropRepo) Create(c *entities.Crop) error {
	c.PlantingDate = entities.Midnight(c.PlantingDate)
	if c.Status == "" {
		c.Status = entities.CropStatusActive
	}
	return r.db.Create(c).Error
}

func (r *cropRepo) FindByID(id uint) (*entities.Crop, error) {
	var c entities.Crop
	if err := r.db.First(&c, "crop_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *cropRepo) ActiveByFarm(farmID uint) ([]entities.Crop, error) {
	var out []entities.Crop
	err := r.db.
		Where("farm_id = ? AND status = ?", farmID, entities.CropStatusActive).
		Order("crop_id ASC").
		Find(&out).Error
	return out, err
}

func (r *cropRepo) UpdateStage(cropID uint, stage string) error {
	return r.db.Model(&entities.Crop{}).Where("crop_id = ?", cropID).
		Update("current_stage", stage).Error
}

func (r *cropRepo) UpdateStatus(cropID uint, status string) error {
	return r.db.Model(&entities.Crop{}).Where("crop_id = ?", cropID).
		Update("status", status).Error
}
