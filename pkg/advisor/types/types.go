package types

import (
	"cropcare/entities"
	"cropcare/pkg/irrigation"
)

// CropRecommendation pairs an irrigation recommendation with its crop and
// owning farm so callers can render a farm-wide or user-wide schedule.
type CropRecommendation struct {
	Crop           entities.Crop             `json:"crop"`
	FarmID         uint                      `json:"farm_id"`
	Recommendation irrigation.Recommendation `json:"recommendation"`
}
