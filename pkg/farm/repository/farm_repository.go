package repository

import "cropcare/entities"

type FarmRepository interface {
	Create(f *entities.Farm) error
	FindByID(id uint) (*entities.Farm, error)
	ByUser(userID string) ([]entities.Farm, error)
	All() ([]entities.Farm, error)
	// ActiveCropArea sums the area of active crops on a farm.
	ActiveCropArea(farmID uint) (float64, error)
}
