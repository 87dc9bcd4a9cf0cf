package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"cropcare/entities"
	"cropcare/pkg/agronomy"
	"cropcare/pkg/schedule/repositoryImp"
)

func newTestSvc(t *testing.T, now time.Time) (*schedSvc, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.Crop{}, &entities.Activity{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return &schedSvc{
		resolver:   agronomy.NewResolver(agronomy.Defaults()),
		activities: repositoryImp.New(db),
		now:        func() time.Time { return now },
	}, db
}

func TestGenerateScheduleGraceWindow(t *testing.T) {
	// planted 30 days ago: wheat entries at day 3, 7 and 25 are in the past
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 1, CropType: "wheat", PlantingDate: now.AddDate(0, 0, -30)}

	planned := svc.GenerateSchedule(crop)

	// day 25 (5 days ago) is past the grace period; day 30 onward survives
	wantDays := []int{30, 55, 85, 105}
	if len(planned) != len(wantDays) {
		t.Fatalf("planned = %d entries, want %d: %+v", len(planned), len(wantDays), planned)
	}
	for i, p := range planned {
		if p.Template.DaysAfterPlanting != wantDays[i] {
			t.Errorf("entry %d: day offset = %d, want %d", i, p.Template.DaysAfterPlanting, wantDays[i])
		}
		want := entities.Midnight(crop.PlantingDate).AddDate(0, 0, wantDays[i])
		if !p.ScheduledDate.Equal(want) {
			t.Errorf("entry %d: date = %v, want %v", i, p.ScheduledDate, want)
		}
	}
}

func TestGenerateScheduleKeepsEntriesWithinGrace(t *testing.T) {
	// planted 27 days ago: day 25 was 2 days ago, inside the 3-day grace
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 1, CropType: "wheat", PlantingDate: now.AddDate(0, 0, -27)}

	planned := svc.GenerateSchedule(crop)
	if len(planned) == 0 || planned[0].Template.DaysAfterPlanting != 25 {
		t.Fatalf("day-25 entry should survive the grace period: %+v", planned)
	}
}

func TestGenerateScheduleUnknownCrop(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 1, CropType: "quinoa", PlantingDate: now}
	if planned := svc.GenerateSchedule(crop); len(planned) != 0 {
		t.Fatalf("crops without a template schedule nothing, got %+v", planned)
	}
}

func TestCreateFromTemplateIdempotent(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, db := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 7, CropType: "wheat", PlantingDate: now}

	first, err := svc.CreateFromTemplate(crop)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first) != 7 {
		t.Fatalf("first run created %d, want the full wheat template", len(first))
	}

	second, err := svc.CreateFromTemplate(crop)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second run created %d, want 0", len(second))
	}

	var n int64
	if err := db.Model(&entities.Activity{}).Where("crop_id = ?", crop.CropID).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 7 {
		t.Fatalf("activities = %d, want 7 after repeated expansion", n)
	}
}

func TestSuggestActivities(t *testing.T) {
	// day 84 of wheat: flowering stage, the day-85 urgent irrigation is 1 away
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 7, CropType: "wheat", PlantingDate: now.AddDate(0, 0, -84)}

	sugg := svc.SuggestActivities(crop)
	if len(sugg) == 0 {
		t.Fatalf("expected suggestions")
	}
	top := sugg[0]
	if top.Template.DaysAfterPlanting != 85 {
		t.Fatalf("top suggestion = day %d, want the day-85 flowering irrigation", top.Template.DaysAfterPlanting)
	}
	// urgent weight 10 plus close-proximity bonus 5
	if top.Urgency != 15 {
		t.Errorf("urgency = %d, want 15", top.Urgency)
	}
	for i := 1; i < len(sugg); i++ {
		if sugg[i].Urgency > sugg[i-1].Urgency {
			t.Fatalf("suggestions not sorted by urgency: %+v", sugg)
		}
	}
}

func TestSuggestActivitiesFiltersFarEntries(t *testing.T) {
	// day 10 of wheat: tillering stage, the jointing day-55 entry is neither
	// a stage match nor within 7 days
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)
	crop := &entities.Crop{CropID: 7, CropType: "wheat", PlantingDate: now.AddDate(0, 0, -10)}

	for _, s := range svc.SuggestActivities(crop) {
		if s.Template.DaysAfterPlanting == 55 {
			t.Fatalf("day-55 entry should be filtered at day 10: %+v", s)
		}
	}
}

func TestSuggestActivitiesCap(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestSvc(t, now)

	entries := make([]agronomy.TemplateEntry, 0, 8)
	for i := 0; i < 8; i++ {
		entries = append(entries, agronomy.TemplateEntry{
			Stage:             "busy",
			DaysAfterPlanting: 10 + i,
			ActivityType:      "weeding",
			Priority:          "medium",
		})
	}
	svc.resolver = agronomy.NewResolver(agronomy.NewTables(
		map[string][]agronomy.StageDef{"hemp": {{Name: "busy", StartDay: 0, EndDay: 100, WaterMMDay: 3}}},
		map[string][]agronomy.TemplateEntry{"hemp": entries},
	))
	crop := &entities.Crop{CropID: 7, CropType: "hemp", PlantingDate: now.AddDate(0, 0, -12)}

	sugg := svc.SuggestActivities(crop)
	if len(sugg) != maxSuggestions {
		t.Fatalf("suggestions = %d, want capped at %d", len(sugg), maxSuggestions)
	}
}
