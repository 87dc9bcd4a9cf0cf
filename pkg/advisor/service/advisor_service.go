package service

import (
	"context"

	"cropcare/entities"
	"cropcare/pkg/advisor/types"
)

type AdvisorService interface {
	// FarmSchedule computes a recommendation for every active crop on the
	// farm, in crop order.
	FarmSchedule(ctx context.Context, farm *entities.Farm) ([]types.CropRecommendation, error)

	// UserSchedule merges all of a user's farms and sorts by priority rank
	// (urgent first), stable on input order for ties.
	UserSchedule(ctx context.Context, userID string) ([]types.CropRecommendation, error)

	// ScheduleAllUrgent creates pending irrigation activities for every
	// irrigate recommendation with urgent or high priority and emits a
	// notification per scheduled crop. Returns the number scheduled.
	ScheduleAllUrgent(ctx context.Context, userID string) (int, error)
}
