package service

import (
	"cropcare/entities"
	"cropcare/pkg/schedule/types"
)

type SchedulerService interface {
	// GenerateSchedule expands the crop's activity template into dated
	// entries, dropping those more than the grace period in the past.
	GenerateSchedule(crop *entities.Crop) []types.PlannedActivity

	// CreateFromTemplate persists the generated schedule. Calling it N
	// times yields the same activity set as calling it once.
	CreateFromTemplate(crop *entities.Crop) ([]entities.Activity, error)

	// SuggestActivities returns the top near-term template entries by
	// urgency, at most five, stable on template order for ties.
	SuggestActivities(crop *entities.Crop) []types.Suggestion
}
