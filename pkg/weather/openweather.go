package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

const owmBaseURL = "https://api.openweathermap.org/data/2.5"

type owmCurrentResp struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecastResp struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Rain struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
		Pop float64 `json:"pop"` // 0..1
	} `json:"list"`
}

// OWMClient fetches current conditions and the 3-hourly forecast from
// OpenWeatherMap. Calls run behind a circuit breaker so a flapping upstream
// fails fast instead of burning the request timeout on every crop.
type OWMClient struct {
	apiKey  string
	base    string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewOWMClient(apiKey string, timeout time.Duration) *OWMClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openweather",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})
	return &OWMClient{
		apiKey:  apiKey,
		base:    owmBaseURL,
		httpc:   &http.Client{Timeout: timeout},
		breaker: cb,
	}
}

func (c *OWMClient) CurrentConditions(ctx context.Context, lat, lon float64) (*Conditions, error) {
	var out owmCurrentResp
	if err := c.getJSON(ctx, "/weather", lat, lon, nil, &out); err != nil {
		return nil, err
	}
	return &Conditions{
		TemperatureC: out.Main.Temp,
		HumidityPct:  out.Main.Humidity,
		WindSpeed:    out.Wind.Speed,
	}, nil
}

func (c *OWMClient) Forecast(ctx context.Context, lat, lon float64, horizonHours int) ([]ForecastEntry, error) {
	if horizonHours <= 0 {
		horizonHours = 24
	}
	// 3-hour buckets, API caps at 40 entries (5 days)
	cnt := horizonHours/3 + 1
	if cnt > 40 {
		cnt = 40
	}
	extra := url.Values{"cnt": []string{fmt.Sprint(cnt)}}

	var out owmForecastResp
	if err := c.getJSON(ctx, "/forecast", lat, lon, extra, &out); err != nil {
		return nil, err
	}
	entries := make([]ForecastEntry, 0, len(out.List))
	for _, it := range out.List {
		entries = append(entries, ForecastEntry{
			Time:               time.Unix(it.Dt, 0).UTC(),
			PrecipitationMM:    it.Rain.ThreeH,
			RainProbabilityPct: it.Pop * 100,
		})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("owm: empty forecast")
	}
	return entries, nil
}

func (c *OWMClient) getJSON(ctx context.Context, path string, lat, lon float64, extra url.Values, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("owm: missing api key")
	}
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lon))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
			return nil, fmt.Errorf("owm status %d: %s", resp.StatusCode, string(b))
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}
