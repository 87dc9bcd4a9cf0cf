package agronomy

import "strings"

const (
	// UnknownStage is the sentinel returned when a crop type has no stage
	// table. Callers must treat it as non-fatal.
	UnknownStage = "unknown"

	// DefaultWaterMMDay is the baseline water need attached to UnknownStage.
	DefaultWaterMMDay = 5.0
)

// StageInfo is the resolver output: stage name, its localization key and the
// stage's baseline daily water requirement.
type StageInfo struct {
	Name       string
	MessageKey string
	WaterMMDay float64
}

// Resolver maps (crop type, days since planting) to a growth stage. It holds
// only immutable reference tables, so a single instance is safe for
// concurrent use.
type Resolver struct {
	tables *Tables
}

func NewResolver(t *Tables) *Resolver { return &Resolver{tables: t} }

// ResolveStage never fails: a crop type without a stage table yields the
// sentinel UnknownStage with DefaultWaterMMDay, never another crop's table.
// Days before the first stage clamp to the first stage; days beyond the last
// stage clamp to the last (the crop is treated as mature).
func (r *Resolver) ResolveStage(cropType string, daysSincePlanting int) StageInfo {
	stages, ok := r.tables.Stages(strings.ToLower(cropType))
	if !ok || len(stages) == 0 {
		return StageInfo{Name: UnknownStage, MessageKey: "stage." + UnknownStage, WaterMMDay: DefaultWaterMMDay}
	}

	for _, s := range stages {
		if daysSincePlanting >= s.StartDay && daysSincePlanting <= s.EndDay {
			return stageInfo(s)
		}
	}
	if daysSincePlanting < stages[0].StartDay {
		return stageInfo(stages[0])
	}
	return stageInfo(stages[len(stages)-1])
}

// TemplatesFor returns the activity template for a crop type, empty when the
// crop has none. Templates do not fall back to the default crop: a missing
// template just means nothing to schedule.
func (r *Resolver) TemplatesFor(cropType string) []TemplateEntry {
	return r.tables.Templates(cropType)
}

func stageInfo(s StageDef) StageInfo {
	return StageInfo{Name: s.Name, MessageKey: s.MessageKey(), WaterMMDay: s.WaterMMDay}
}
