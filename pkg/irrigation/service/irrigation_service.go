package service

import (
	"context"
	"time"

	"cropcare/entities"
	"cropcare/pkg/irrigation"
)

type IrrigationService interface {
	// RecommendForCrop never fails: collaborator errors degrade to the
	// engine's documented fallbacks instead of surfacing.
	RecommendForCrop(ctx context.Context, crop *entities.Crop, farm *entities.Farm) irrigation.Recommendation

	// ScheduleIrrigation converts an irrigate recommendation into a pending
	// activity; created=false means the slot already existed.
	ScheduleIrrigation(crop *entities.Crop, waterAmountMM float64, scheduledDate time.Time) (*entities.Activity, bool, error)

	EfficiencyReport(farm *entities.Farm) (irrigation.EfficiencyReport, error)
	Calendar(crop *entities.Crop, daysAhead int) []irrigation.CalendarDay
}
