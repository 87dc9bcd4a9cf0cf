package irrigation

import "time"

// EfficiencyReport summarizes water use over a trailing window of completed
// irrigation activities. Ratings and recommendations are message keys.
type EfficiencyReport struct {
	TotalWaterUsedMM   float64   `json:"total_water_used_mm"`
	IrrigationEvents   int       `json:"irrigation_events"`
	FarmAreaAcres      float64   `json:"farm_area_acres"`
	WaterPerAcreMM     float64   `json:"water_per_acre_mm"`
	EfficiencyPct      float64   `json:"efficiency_pct"`
	RatingKey          string    `json:"rating_key"`
	RecommendationKeys []string  `json:"recommendation_keys"`
	WindowStart        time.Time `json:"window_start"`
}

// CalendarDay is one entry of the look-ahead irrigation calendar.
type CalendarDay struct {
	Date          time.Time `json:"date"`
	Action        string    `json:"action"` // irrigate|monitor
	WaterAmountMM float64   `json:"water_amount_mm"`
	Priority      string    `json:"priority"`
	MessageKey    string    `json:"message_key"`
}

// MonthlyBenchmarkMM is the reference water use per acre and month most
// crops do well at.
const MonthlyBenchmarkMM = 150.0

// RatingFor maps an efficiency percentage to a rating key plus improvement
// tips.
func RatingFor(pct float64) (string, []string) {
	switch {
	case pct >= 90:
		return "report.rating.excellent", []string{"report.tip.keep_practices", "report.tip.water_quality"}
	case pct >= 75:
		return "report.rating.good", []string{"report.tip.drip_irrigation", "report.tip.timing"}
	case pct >= 60:
		return "report.rating.average", []string{"report.tip.save_water", "report.tip.mulching", "report.tip.check_moisture"}
	default:
		return "report.rating.needs_improvement", []string{"report.tip.immediate_review", "report.tip.expert_advice"}
	}
}
