package weather

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClient struct {
	cur    *Conditions
	curErr error
	fc     []ForecastEntry
	fcErr  error
}

func (s *stubClient) CurrentConditions(context.Context, float64, float64) (*Conditions, error) {
	return s.cur, s.curErr
}

func (s *stubClient) Forecast(context.Context, float64, float64, int) ([]ForecastEntry, error) {
	return s.fc, s.fcErr
}

func TestAnalyzeReducesForecast(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	a := NewAnalyzer(&stubClient{
		cur: &Conditions{TemperatureC: 31, HumidityPct: 55, WindSpeed: 4},
		fc: []ForecastEntry{
			{Time: now.Add(3 * time.Hour), PrecipitationMM: 1.5, RainProbabilityPct: 20},
			{Time: now.Add(12 * time.Hour), PrecipitationMM: 2.0, RainProbabilityPct: 60},
			{Time: now.Add(23 * time.Hour), PrecipitationMM: 0.5, RainProbabilityPct: 35},
			// beyond the 24h window, must not count
			{Time: now.Add(30 * time.Hour), PrecipitationMM: 9.0, RainProbabilityPct: 95},
		},
	}, time.Second)
	a.now = func() time.Time { return now }

	sig := a.Analyze(context.Background(), 12.9, 77.6)
	if sig == nil {
		t.Fatalf("expected a signal")
	}
	if sig.TemperatureC != 31 || sig.HumidityPct != 55 || sig.WindSpeed != 4 {
		t.Errorf("conditions not carried over: %+v", sig)
	}
	if sig.RainNext24hMM != 4.0 {
		t.Errorf("rain sum = %v, want 4.0", sig.RainNext24hMM)
	}
	if sig.RainProbabilityMaxPct != 60 {
		t.Errorf("rain probability max = %v, want 60", sig.RainProbabilityMaxPct)
	}
}

func TestAnalyzeNilOnFailure(t *testing.T) {
	boom := errors.New("upstream down")
	cases := []struct {
		name string
		c    *stubClient
	}{
		{"current conditions fail", &stubClient{curErr: boom}},
		{"forecast fails", &stubClient{cur: &Conditions{TemperatureC: 30}, fcErr: boom}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnalyzer(tc.c, time.Second)
			if sig := a.Analyze(context.Background(), 0, 0); sig != nil {
				t.Fatalf("expected nil signal, got %+v", sig)
			}
		})
	}
}

func TestAnalyzeEmptyForecast(t *testing.T) {
	a := NewAnalyzer(&stubClient{cur: &Conditions{TemperatureC: 30, HumidityPct: 50}}, time.Second)
	sig := a.Analyze(context.Background(), 0, 0)
	if sig == nil {
		t.Fatalf("empty forecast is not a failure")
	}
	if sig.RainNext24hMM != 0 || sig.RainProbabilityMaxPct != 0 {
		t.Errorf("expected zero rain signal, got %+v", sig)
	}
}
