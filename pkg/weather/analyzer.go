package weather

import (
	"context"
	"log"
	"time"
)

// Signal is the compact decision signal the irrigation engine consumes:
// current conditions plus the forecast reduced over the next 24 hours.
// It is ephemeral and never persisted.
type Signal struct {
	TemperatureC          float64 `json:"temperature_c"`
	HumidityPct           float64 `json:"humidity_pct"`
	WindSpeed             float64 `json:"wind_speed"`
	RainNext24hMM         float64 `json:"rain_next_24h_mm"`
	RainProbabilityMaxPct float64 `json:"rain_probability_max_pct"`
}

// Analyzer reduces raw collaborator data into a Signal.
type Analyzer struct {
	client  Client
	timeout time.Duration
	now     func() time.Time
}

func NewAnalyzer(c Client, timeout time.Duration) *Analyzer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Analyzer{client: c, timeout: timeout, now: time.Now}
}

// Analyze returns nil when either collaborator call fails: downstream code
// must read nil as "weather unknown", never as "no rain". A partially
// populated signal is never returned.
func (a *Analyzer) Analyze(ctx context.Context, lat, lon float64) *Signal {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cur, err := a.client.CurrentConditions(cctx, lat, lon)
	if err != nil {
		log.Printf("[weather] current conditions unavailable: %v", err)
		return nil
	}
	fc, err := a.client.Forecast(cctx, lat, lon, 24)
	if err != nil {
		log.Printf("[weather] forecast unavailable: %v", err)
		return nil
	}

	cutoff := a.now().Add(24 * time.Hour)
	sig := &Signal{
		TemperatureC: cur.TemperatureC,
		HumidityPct:  cur.HumidityPct,
		WindSpeed:    cur.WindSpeed,
	}
	for _, e := range fc {
		if e.Time.After(cutoff) {
			continue
		}
		sig.RainNext24hMM += e.PrecipitationMM
		if e.RainProbabilityPct > sig.RainProbabilityMaxPct {
			sig.RainProbabilityMaxPct = e.RainProbabilityPct
		}
	}
	return sig
}
