package repository

import "cropcare/entities"

type CropRepository interface {
	Create(c *entities.Crop) error
	FindByID(id uint) (*entities.Crop, error)
	ActiveByFarm(farmID uint) ([]entities.Crop, error)
	UpdateStage(cropID uint, stage string) error
	UpdateStatus(cropID uint, status string) error
}
