package types

import (
	"time"

	"cropcare/pkg/agronomy"
)

// PlannedActivity is a template entry resolved to a concrete date for one
// crop, before persistence.
type PlannedActivity struct {
	Template      agronomy.TemplateEntry `json:"template"`
	ScheduledDate time.Time              `json:"scheduled_date"`
}

// Suggestion is a near-term activity ranked by urgency.
type Suggestion struct {
	Template      agronomy.TemplateEntry `json:"template"`
	SuggestedDate time.Time              `json:"suggested_date"`
	Urgency       int                    `json:"urgency"`
}
