package irrigation

import "time"

// Window is an irrigation time slot with its application efficiency; less
// water evaporates in the early morning and evening slots.
type Window struct {
	MessageKey       string  `json:"message_key"`
	StartHour        int     `json:"start_hour"`
	EndHour          int     `json:"end_hour"`
	Efficiency       float64 `json:"efficiency"`
	AdjustedAmountMM float64 `json:"adjusted_amount_mm"`
	WaterSavedMM     float64 `json:"water_saved_mm"`
}

var windows = []Window{
	{MessageKey: "window.early_morning", StartHour: 5, EndHour: 8, Efficiency: 0.95},
	{MessageKey: "window.evening", StartHour: 18, EndHour: 20, Efficiency: 0.90},
	{MessageKey: "window.night", StartHour: 20, EndHour: 22, Efficiency: 0.85},
}

// OptimalWindow picks the next irrigation slot after now and scales the dose
// for that slot's efficiency. Past the last slot of the day it falls to
// tomorrow's early-morning window.
func OptimalWindow(now time.Time, amountMM float64) Window {
	hour := now.Hour()
	for _, w := range windows {
		if hour < w.StartHour {
			return fillWindow(w, amountMM, false)
		}
	}
	return fillWindow(windows[0], amountMM, true)
}

func fillWindow(w Window, amountMM float64, tomorrow bool) Window {
	w.AdjustedAmountMM = round1(amountMM / w.Efficiency)
	w.WaterSavedMM = round1(amountMM * (1 - w.Efficiency))
	if tomorrow {
		w.MessageKey = "window.tomorrow_morning"
	}
	return w
}
