package serviceImp

import (
	"fmt"
	"log"
	"sort"
	"time"

	"cropcare/entities"
	"cropcare/pkg/agronomy"
	"cropcare/pkg/schedule/repository"
	"cropcare/pkg/schedule/service"
	"cropcare/pkg/schedule/types"
)

// GracePeriodDays tolerates short catch-up after late onboarding without
// flooding history with long-stale entries.
const GracePeriodDays = 3

const maxSuggestions = 5

type schedSvc struct {
	resolver   *agronomy.Resolver
	activities repository.ActivityRepository
	now        func() time.Time
}

func New(resolver *agronomy.Resolver, activities repository.ActivityRepository) service.SchedulerService {
	return &schedSvc{resolver: resolver, activities: activities, now: time.Now}
}

func (s *schedSvc) GenerateSchedule(crop *entities.Crop) []types.PlannedActivity {
	cutoff := entities.Midnight(s.now()).AddDate(0, 0, -GracePeriodDays)
	var out []types.PlannedActivity
	for _, tmpl := range s.resolver.TemplatesFor(crop.CropType) {
		date := entities.Midnight(crop.PlantingDate).AddDate(0, 0, tmpl.DaysAfterPlanting)
		if date.Before(cutoff) {
			continue
		}
		out = append(out, types.PlannedActivity{Template: tmpl, ScheduledDate: date})
	}
	return out
}

func (s *schedSvc) CreateFromTemplate(crop *entities.Crop) ([]entities.Activity, error) {
	var created []entities.Activity
	for _, p := range s.GenerateSchedule(crop) {
		exists, err := s.activities.ExistsFor(crop.CropID, p.Template.ActivityType, p.ScheduledDate)
		if err != nil {
			return created, fmt.Errorf("template schedule for crop %d: %w", crop.CropID, err)
		}
		if exists {
			continue
		}
		a := entities.Activity{
			CropID:        crop.CropID,
			ActivityType:  p.Template.ActivityType,
			ScheduledDate: p.ScheduledDate,
			Status:        entities.ActivityStatusPending,
			Quantity:      p.Template.Quantity,
		}
		// The unique index resolves the check-then-insert race; a
		// concurrent duplicate just reports ok=false.
		ok, err := s.activities.Create(&a)
		if err != nil {
			return created, fmt.Errorf("template schedule for crop %d: %w", crop.CropID, err)
		}
		if !ok {
			log.Printf("[schedule] duplicate %s on %s for crop %d, skipped",
				a.ActivityType, a.ScheduledDate.Format("2006-01-02"), crop.CropID)
			continue
		}
		created = append(created, a)
	}
	return created, nil
}

func (s *schedSvc) SuggestActivities(crop *entities.Crop) []types.Suggestion {
	now := s.now()
	daysPlanted := crop.DaysSincePlanting(now)
	stage := s.resolver.ResolveStage(crop.CropType, daysPlanted)

	var out []types.Suggestion
	for _, tmpl := range s.resolver.TemplatesFor(crop.CropType) {
		gap := tmpl.DaysAfterPlanting - daysPlanted
		if gap < 0 {
			gap = -gap
		}
		if tmpl.Stage != stage.Name && gap > 7 {
			continue
		}
		out = append(out, types.Suggestion{
			Template:      tmpl,
			SuggestedDate: entities.Midnight(crop.PlantingDate).AddDate(0, 0, tmpl.DaysAfterPlanting),
			Urgency:       priorityWeight(tmpl.Priority) + proximityBonus(gap),
		})
	}
	// stable sort: ties keep template order
	sort.SliceStable(out, func(i, j int) bool { return out[i].Urgency > out[j].Urgency })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func priorityWeight(p string) int {
	switch p {
	case "urgent":
		return 10
	case "high":
		return 7
	case "medium":
		return 5
	case "low":
		return 3
	default:
		return 5
	}
}

func proximityBonus(gap int) int {
	switch {
	case gap <= 2:
		return 5
	case gap <= 5:
		return 2
	default:
		return 0
	}
}
