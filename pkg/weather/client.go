package weather

import (
	"context"
	"time"
)

// Conditions is a current-conditions reading at a location.
type Conditions struct {
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	WindSpeed    float64 `json:"wind_speed"`
}

// ForecastEntry is one time bucket of a forecast series.
type ForecastEntry struct {
	Time               time.Time `json:"time"`
	PrecipitationMM    float64   `json:"precipitation_mm"`
	RainProbabilityPct float64   `json:"rain_probability_pct"`
}

// Client is the weather collaborator. Implementations may block on network
// I/O; callers bound them with the context.
type Client interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (*Conditions, error)
	Forecast(ctx context.Context, lat, lon float64, horizonHours int) ([]ForecastEntry, error)
}
