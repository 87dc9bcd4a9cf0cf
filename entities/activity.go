package entities

import "time"

const (
	ActivityStatusPending   = "pending"
	ActivityStatusCompleted = "completed"
	ActivityStatusSkipped   = "skipped"
)

// Activity is a dated farm task (irrigation, fertilizer, pesticide, weeding,
// harvesting). The composite unique index is the scheduler's dedupe contract:
// repeated template expansion can never create a second row for the same
// crop/type/date.
type Activity struct {
	ActivityID    uint       `gorm:"primaryKey" json:"activity_id"`
	CropID        uint       `json:"crop_id" gorm:"index;uniqueIndex:uniq_crop_type_date"`
	ActivityType  string     `json:"activity_type" gorm:"uniqueIndex:uniq_crop_type_date"`
	ScheduledDate time.Time  `json:"scheduled_date" gorm:"uniqueIndex:uniq_crop_type_date"`
	CompletedDate *time.Time `json:"completed_date"`
	Status        string     `json:"status"`   // pending|completed|skipped
	Quantity      string     `json:"quantity"` // e.g. "25.5mm", "50kg/acre"
	Notes         string     `json:"notes"`

	CreatedAt time.Time
}

func (a *Activity) IsOverdue(today time.Time) bool {
	return a.Status == ActivityStatusPending && Midnight(today).After(Midnight(a.ScheduledDate))
}

func (a *Activity) IsTerminal() bool {
	return a.Status == ActivityStatusCompleted || a.Status == ActivityStatusSkipped
}
