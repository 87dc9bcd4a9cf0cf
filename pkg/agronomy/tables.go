package agronomy

import (
	"fmt"
	"strings"
)

// StageDef is one row of a crop's growth-stage table: a named phase bound to
// a [StartDay, EndDay] range of days since planting and a baseline daily
// water requirement.
type StageDef struct {
	Name       string
	StartDay   int
	EndDay     int
	WaterMMDay float64
}

// MessageKey is the localization key for a stage ("stage.tillering" etc.).
// The engine never renders user-facing text itself.
func (s StageDef) MessageKey() string { return "stage." + s.Name }

// TemplateEntry is one row of a crop's lifecycle activity template, anchored
// at a day offset from planting.
type TemplateEntry struct {
	Stage             string
	DaysAfterPlanting int
	ActivityType      string // irrigation|fertilizer|pesticide|weeding|harvesting
	Quantity          string
	Priority          string // urgent|high|medium|low
}

func (t TemplateEntry) MessageKey() string {
	return fmt.Sprintf("activity.%s.%s", t.ActivityType, t.Stage)
}

// Tables holds the static per-crop reference data. Loaded once at startup and
// treated as immutable afterwards.
type Tables struct {
	stages    map[string][]StageDef
	templates map[string][]TemplateEntry
}

func NewTables(stages map[string][]StageDef, templates map[string][]TemplateEntry) *Tables {
	return &Tables{stages: stages, templates: templates}
}

func (t *Tables) Stages(cropType string) ([]StageDef, bool) {
	s, ok := t.stages[strings.ToLower(cropType)]
	return s, ok
}

func (t *Tables) Templates(cropType string) []TemplateEntry {
	return t.templates[strings.ToLower(cropType)]
}

func (t *Tables) CropTypes() []string {
	out := make([]string, 0, len(t.stages))
	for k := range t.stages {
		out = append(out, k)
	}
	return out
}

// Validate checks the load-time invariants: stage ranges per crop must be
// ordered, contiguous and non-overlapping, and template day offsets must
// strictly increase in template order. Violations are configuration bugs and
// fail startup, they are never per-request errors.
func (t *Tables) Validate() error {
	for crop, stages := range t.stages {
		if len(stages) == 0 {
			return fmt.Errorf("agronomy: crop %q has an empty stage table", crop)
		}
		for i, s := range stages {
			if s.EndDay < s.StartDay {
				return fmt.Errorf("agronomy: crop %q stage %q has end_day %d < start_day %d", crop, s.Name, s.EndDay, s.StartDay)
			}
			if i > 0 && s.StartDay != stages[i-1].EndDay+1 {
				return fmt.Errorf("agronomy: crop %q stage %q starts at day %d, expected %d (ranges must be contiguous)",
					crop, s.Name, s.StartDay, stages[i-1].EndDay+1)
			}
		}
	}
	for crop, tmpl := range t.templates {
		for i := 1; i < len(tmpl); i++ {
			if tmpl[i].DaysAfterPlanting <= tmpl[i-1].DaysAfterPlanting {
				return fmt.Errorf("agronomy: crop %q template entry %d (%s) does not increase day offset", crop, i, tmpl[i].ActivityType)
			}
		}
	}
	return nil
}

// Defaults returns the built-in reference tables. Deployments can override
// them with CSV/XLSX files via LoadFromFiles.
func Defaults() *Tables {
	stages := map[string][]StageDef{
		"wheat": {
			{Name: "germination", StartDay: 0, EndDay: 7, WaterMMDay: 2.0},
			{Name: "tillering", StartDay: 8, EndDay: 40, WaterMMDay: 4.0},
			{Name: "jointing", StartDay: 41, EndDay: 70, WaterMMDay: 5.5},
			{Name: "flowering", StartDay: 71, EndDay: 95, WaterMMDay: 6.0},
			{Name: "grain_filling", StartDay: 96, EndDay: 120, WaterMMDay: 5.0},
			{Name: "maturity", StartDay: 121, EndDay: 140, WaterMMDay: 2.5},
		},
		"rice": {
			{Name: "transplanting", StartDay: 0, EndDay: 10, WaterMMDay: 6.0},
			{Name: "vegetative", StartDay: 11, EndDay: 30, WaterMMDay: 7.0},
			{Name: "tillering", StartDay: 31, EndDay: 60, WaterMMDay: 8.0},
			{Name: "flowering", StartDay: 61, EndDay: 90, WaterMMDay: 9.0},
			{Name: "grain_filling", StartDay: 91, EndDay: 120, WaterMMDay: 7.0},
			{Name: "maturity", StartDay: 121, EndDay: 150, WaterMMDay: 4.0},
		},
		"sugarcane": {
			{Name: "germination", StartDay: 0, EndDay: 45, WaterMMDay: 3.0},
			{Name: "tillering", StartDay: 46, EndDay: 120, WaterMMDay: 5.0},
			{Name: "grand_growth", StartDay: 121, EndDay: 270, WaterMMDay: 7.0},
			{Name: "maturity", StartDay: 271, EndDay: 365, WaterMMDay: 4.0},
		},
	}
	templates := map[string][]TemplateEntry{
		"wheat": {
			{Stage: "germination", DaysAfterPlanting: 3, ActivityType: "irrigation", Quantity: "25mm", Priority: "high"},
			{Stage: "germination", DaysAfterPlanting: 7, ActivityType: "fertilizer", Quantity: "50kg/acre", Priority: "medium"},
			{Stage: "tillering", DaysAfterPlanting: 25, ActivityType: "irrigation", Quantity: "35mm", Priority: "high"},
			{Stage: "tillering", DaysAfterPlanting: 30, ActivityType: "fertilizer", Quantity: "65kg/acre", Priority: "high"},
			{Stage: "jointing", DaysAfterPlanting: 55, ActivityType: "irrigation", Quantity: "40mm", Priority: "high"},
			{Stage: "flowering", DaysAfterPlanting: 85, ActivityType: "irrigation", Quantity: "45mm", Priority: "urgent"},
			{Stage: "grain_filling", DaysAfterPlanting: 105, ActivityType: "irrigation", Quantity: "35mm", Priority: "high"},
		},
		"rice": {
			{Stage: "transplanting", DaysAfterPlanting: 1, ActivityType: "irrigation", Quantity: "50mm", Priority: "urgent"},
			{Stage: "vegetative", DaysAfterPlanting: 15, ActivityType: "fertilizer", Quantity: "40kg/acre", Priority: "high"},
			{Stage: "tillering", DaysAfterPlanting: 35, ActivityType: "irrigation", Quantity: "30mm", Priority: "high"},
			{Stage: "flowering", DaysAfterPlanting: 75, ActivityType: "irrigation", Quantity: "50mm", Priority: "urgent"},
		},
		"sugarcane": {
			{Stage: "germination", DaysAfterPlanting: 10, ActivityType: "irrigation", Quantity: "60mm", Priority: "high"},
			{Stage: "tillering", DaysAfterPlanting: 45, ActivityType: "fertilizer", Quantity: "120kg/acre", Priority: "high"},
			{Stage: "grand_growth", DaysAfterPlanting: 120, ActivityType: "irrigation", Quantity: "80mm", Priority: "high"},
		},
	}
	return &Tables{stages: stages, templates: templates}
}
