package serviceImp

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"cropcare/entities"
	"cropcare/pkg/agronomy"
	"cropcare/pkg/irrigation"
	"cropcare/pkg/irrigation/service"
	activityrepo "cropcare/pkg/schedule/repository"
	"cropcare/pkg/weather"

	farmrepo "cropcare/pkg/farm/repository"
)

type irrigationSvc struct {
	resolver   *agronomy.Resolver
	analyzer   *weather.Analyzer
	activities activityrepo.ActivityRepository
	farms      farmrepo.FarmRepository
	now        func() time.Time
}

func New(resolver *agronomy.Resolver, analyzer *weather.Analyzer,
	activities activityrepo.ActivityRepository, farms farmrepo.FarmRepository) service.IrrigationService {
	return &irrigationSvc{
		resolver:   resolver,
		analyzer:   analyzer,
		activities: activities,
		farms:      farms,
		now:        time.Now,
	}
}

func (s *irrigationSvc) RecommendForCrop(ctx context.Context, crop *entities.Crop, farm *entities.Farm) irrigation.Recommendation {
	now := s.now()
	stage := s.resolver.ResolveStage(crop.CropType, crop.DaysSincePlanting(now))

	daysSince := irrigation.DefaultDaysSinceIrrigation
	last, err := s.activities.LastCompletedIrrigation(crop.CropID)
	if err != nil {
		log.Printf("[irrigation] last irrigation lookup failed for crop %d: %v", crop.CropID, err)
	} else if last != nil && last.CompletedDate != nil {
		daysSince = int(entities.Midnight(now).Sub(entities.Midnight(*last.CompletedDate)).Hours() / 24)
	}

	var sig *weather.Signal
	if s.analyzer != nil && farm != nil {
		if lat, lon, ok := farm.Location(); ok {
			sig = s.analyzer.Analyze(ctx, lat, lon)
		}
	}

	return irrigation.Decide(irrigation.DecisionInput{
		CropID:              crop.CropID,
		Stage:               stage,
		DaysSinceIrrigation: daysSince,
		Signal:              sig,
		Now:                 now,
	})
}

func (s *irrigationSvc) ScheduleIrrigation(crop *entities.Crop, waterAmountMM float64, scheduledDate time.Time) (*entities.Activity, bool, error) {
	if scheduledDate.IsZero() {
		scheduledDate = s.now()
	}
	a := &entities.Activity{
		CropID:        crop.CropID,
		ActivityType:  "irrigation",
		ScheduledDate: entities.Midnight(scheduledDate),
		Status:        entities.ActivityStatusPending,
		Quantity:      fmt.Sprintf("%.1fmm", waterAmountMM),
	}
	created, err := s.activities.Create(a)
	if err != nil {
		return nil, false, fmt.Errorf("schedule irrigation: %w", err)
	}
	return a, created, nil
}

// EfficiencyReport aggregates the last 30 days of completed irrigation.
// Quantity strings that do not parse as "<n>mm" are skipped row by row; one
// bad record never aborts the report.
func (s *irrigationSvc) EfficiencyReport(farm *entities.Farm) (irrigation.EfficiencyReport, error) {
	since := s.now().AddDate(0, 0, -30)
	acts, err := s.activities.CompletedIrrigationForFarm(farm.FarmID, since)
	if err != nil {
		return irrigation.EfficiencyReport{}, fmt.Errorf("efficiency report: %w", err)
	}

	total := 0.0
	for _, a := range acts {
		mm, ok := parseQuantityMM(a.Quantity)
		if !ok {
			log.Printf("[irrigation] skipping malformed quantity %q on activity %d", a.Quantity, a.ActivityID)
			continue
		}
		total += mm
	}

	area, err := s.farms.ActiveCropArea(farm.FarmID)
	if err != nil {
		return irrigation.EfficiencyReport{}, fmt.Errorf("efficiency report: %w", err)
	}
	if area <= 0 {
		area = 1
	}
	perAcre := total / area

	pct := (irrigation.MonthlyBenchmarkMM / maxf(perAcre, 1)) * 100
	if pct > 100 {
		pct = 100
	}
	rating, tips := irrigation.RatingFor(pct)

	return irrigation.EfficiencyReport{
		TotalWaterUsedMM:   round1(total),
		IrrigationEvents:   len(acts),
		FarmAreaAcres:      area,
		WaterPerAcreMM:     round1(perAcre),
		EfficiencyPct:      round1(pct),
		RatingKey:          rating,
		RecommendationKeys: tips,
		WindowStart:        entities.Midnight(since),
	}, nil
}

// Calendar is a simple look-ahead: a dose of the stage's base need every
// seventh day, monitoring in between. It ignores weather, which is only
// known a few days out.
func (s *irrigationSvc) Calendar(crop *entities.Crop, daysAhead int) []irrigation.CalendarDay {
	if daysAhead <= 0 {
		daysAhead = 30
	}
	today := entities.Midnight(s.now())
	out := make([]irrigation.CalendarDay, 0, daysAhead)
	for d := 0; d < daysAhead; d++ {
		date := today.AddDate(0, 0, d)
		stage := s.resolver.ResolveStage(crop.CropType, crop.DaysSincePlanting(date))
		if d%7 == 0 {
			out = append(out, irrigation.CalendarDay{
				Date:          date,
				Action:        irrigation.ActionIrrigate,
				WaterAmountMM: stage.WaterMMDay,
				Priority:      irrigation.PriorityMedium,
				MessageKey:    "calendar.irrigate",
			})
			continue
		}
		out = append(out, irrigation.CalendarDay{
			Date:       date,
			Action:     irrigation.ActionMonitor,
			Priority:   irrigation.PriorityLow,
			MessageKey: "calendar.monitor",
		})
	}
	return out
}

// parseQuantityMM accepts the stored "25.5mm" format.
func parseQuantityMM(q string) (float64, bool) {
	q = strings.TrimSpace(strings.ToLower(q))
	if !strings.HasSuffix(q, "mm") {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(q, "mm")), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
