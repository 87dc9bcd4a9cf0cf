package weather

import (
	"context"
	"time"
)

type mockClient struct{}

// NewMock returns a deterministic client for development and tests when no
// API key is configured.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) CurrentConditions(_ context.Context, _, _ float64) (*Conditions, error) {
	return &Conditions{TemperatureC: 28.5, HumidityPct: 65, WindSpeed: 3.2}, nil
}

func (m *mockClient) Forecast(_ context.Context, _, _ float64, horizonHours int) ([]ForecastEntry, error) {
	if horizonHours <= 0 {
		horizonHours = 24
	}
	now := time.Now().UTC().Truncate(time.Hour)
	var out []ForecastEntry
	for h := 0; h <= horizonHours; h += 3 {
		e := ForecastEntry{Time: now.Add(time.Duration(h) * time.Hour), RainProbabilityPct: 30}
		if h%12 == 9 {
			e.PrecipitationMM = 0.8
			e.RainProbabilityPct = 45
		}
		out = append(out, e)
	}
	return out, nil
}
