package irrigation

import (
	"math"
	"time"

	"cropcare/pkg/agronomy"
	"cropcare/pkg/weather"
)

const (
	ActionIrrigate = "irrigate"
	ActionSkip     = "skip"
	ActionMonitor  = "monitor"
)

const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Skip reasons, reported as part of the message key so the caller can
// localize them.
const (
	SkipRainExpected   = "rain_expected"
	SkipSufficientRain = "sufficient_rain"
)

// DefaultDaysSinceIrrigation applies when a crop has no completed irrigation
// activity on record.
const DefaultDaysSinceIrrigation = 7

// DecisionInput carries everything Decide needs; it performs no I/O.
type DecisionInput struct {
	CropID              uint
	Stage               agronomy.StageInfo
	DaysSinceIrrigation int
	Signal              *weather.Signal // nil = weather unknown
	Now                 time.Time
}

// Recommendation is the engine output. WaterAmountMM is zero unless the
// action is irrigate. MessageKey plus Params replace any rendered text;
// localization is an external concern.
type Recommendation struct {
	CropID              uint           `json:"crop_id"`
	Action              string         `json:"action"`
	Priority            string         `json:"priority"`
	WaterAmountMM       float64        `json:"water_amount_mm"`
	DaysSinceIrrigation int            `json:"days_since_irrigation"`
	GrowthStage         string         `json:"growth_stage"`
	GrowthStageKey      string         `json:"growth_stage_key"`
	SkipReason          string         `json:"skip_reason,omitempty"`
	MessageKey          string         `json:"message_key"`
	Params              map[string]any `json:"params,omitempty"`
	WeatherFactor       float64        `json:"weather_factor"`
	BaseNeedMMDay       float64        `json:"base_need_mm_day"`
	CalculatedAt        time.Time      `json:"calculated_at"`
}

// Decide computes the irrigation recommendation from stage, weather signal
// and irrigation history. With a nil signal it returns the fixed fallback
// (irrigate, medium, one day's base need): guidance must never disappear
// just because weather data is unavailable.
func Decide(in DecisionInput) Recommendation {
	rec := Recommendation{
		CropID:              in.CropID,
		DaysSinceIrrigation: in.DaysSinceIrrigation,
		GrowthStage:         in.Stage.Name,
		GrowthStageKey:      in.Stage.MessageKey,
		BaseNeedMMDay:       in.Stage.WaterMMDay,
		WeatherFactor:       1.0,
		CalculatedAt:        in.Now,
	}

	if in.Signal == nil {
		rec.Action = ActionIrrigate
		rec.Priority = PriorityMedium
		rec.WaterAmountMM = round1(in.Stage.WaterMMDay)
		rec.MessageKey = "irrigation.irrigate_estimated"
		rec.Params = map[string]any{"water_mm": rec.WaterAmountMM}
		return rec
	}

	days := in.DaysSinceIrrigation
	if days < 1 {
		days = 1
	}
	totalNeed := in.Stage.WaterMMDay * float64(days)

	sig := in.Signal
	skipReason := ""
	switch {
	case sig.RainProbabilityMaxPct > 70:
		skipReason = SkipRainExpected
	case sig.RainNext24hMM > 5:
		skipReason = SkipSufficientRain
	}

	factor := 1.0
	if skipReason == "" {
		if sig.TemperatureC > 35 {
			factor *= 1.2
		}
		if sig.HumidityPct < 40 {
			factor *= 1.1
		}
		if sig.WindSpeed > 15 {
			factor *= 1.15
		}
	}
	adjustedNeed := totalNeed * factor
	rec.WeatherFactor = round2(factor)

	switch {
	case skipReason != "":
		rec.Action = ActionSkip
		rec.Priority = PriorityLow
		rec.SkipReason = skipReason
		rec.MessageKey = "irrigation.skip." + skipReason
		if skipReason == SkipRainExpected {
			rec.Params = map[string]any{"rain_probability_pct": sig.RainProbabilityMaxPct}
		} else {
			rec.Params = map[string]any{"rain_mm": sig.RainNext24hMM}
		}
	case in.DaysSinceIrrigation >= 2 && adjustedNeed > 0:
		rec.Action = ActionIrrigate
		rec.Priority = irrigatePriority(in.DaysSinceIrrigation, sig)
		rec.WaterAmountMM = round1(adjustedNeed)
		rec.MessageKey = "irrigation.irrigate"
		rec.Params = map[string]any{"water_mm": rec.WaterAmountMM}
	default:
		rec.Action = ActionMonitor
		rec.Priority = PriorityLow
		rec.MessageKey = "irrigation.monitor"
	}
	return rec
}

func irrigatePriority(daysSinceIrrigation int, sig *weather.Signal) string {
	switch {
	case daysSinceIrrigation >= 5:
		return PriorityUrgent
	case daysSinceIrrigation >= 3:
		return PriorityHigh
	case sig != nil && sig.TemperatureC > 35:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PriorityRank orders priorities for sorting, urgent first. Unknown values
// rank last.
func PriorityRank(p string) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
