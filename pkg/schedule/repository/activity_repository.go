package repository

import (
	"errors"
	"time"

	"cropcare/entities"
)

// ErrTerminalState is returned when completing or skipping an activity that
// already reached a terminal state. Terminal states have no outgoing
// transitions.
var ErrTerminalState = errors.New("activity is in a terminal state")

type ActivityRepository interface {
	// Create inserts the activity; a duplicate of the (crop, type, date)
	// key is a benign no-op and reports created=false.
	Create(a *entities.Activity) (created bool, err error)
	ExistsFor(cropID uint, activityType string, scheduledDate time.Time) (bool, error)
	ListByCrop(cropID uint) ([]entities.Activity, error)
	// LastCompletedIrrigation returns (nil, nil) when the crop has no
	// completed irrigation on record.
	LastCompletedIrrigation(cropID uint) (*entities.Activity, error)
	Complete(activityID uint, completedDate time.Time, notes string) error
	Skip(activityID uint) error
	CompletedIrrigationForFarm(farmID uint, since time.Time) ([]entities.Activity, error)
}
