package providers

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
)

// WeatherAPI reads today's hourly forecast from weatherapi.com in one call.
type WeatherAPI struct {
	BaseURL string

	client   JSONGetter
	apiKey   string
	lat, lon float64
}

// Ensure WeatherAPI implements forecast.Provider
var _ forecast.Provider = (*WeatherAPI)(nil)

// NewWeatherAPI creates a weatherapi.com provider.
func NewWeatherAPI(client JSONGetter, apiKey string, lat, lon float64) *WeatherAPI {
	return &WeatherAPI{
		BaseURL: urls.WeatherAPIBase,
		client:  client,
		apiKey:  apiKey,
		lat:     lat,
		lon:     lon,
	}
}

// Name returns the provider name
func (p *WeatherAPI) Name() string {
	return "weatherapi"
}

type weatherAPIResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Hour []struct {
				Time         string   `json:"time"`
				ChanceOfRain *int     `json:"chance_of_rain"`
				TempF        *float64 `json:"temp_f"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Fetch returns chance_of_rain and temp_f for every hour of today.
func (p *WeatherAPI) Fetch(ctx context.Context, _ forecast.LocalTime) (forecast.Forecast, error) {
	q := url.Values{}
	q.Set("key", p.apiKey)
	q.Set("q", coord(p.lat)+","+coord(p.lon))
	q.Set("days", "1")
	q.Set("aqi", "no")
	q.Set("alerts", "no")

	var resp weatherAPIResponse
	if err := p.client.GetJSON(ctx, p.BaseURL+"/forecast.json?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("weatherapi forecast: %w", err)
	}

	out := forecast.Forecast{}
	for _, day := range resp.Forecast.ForecastDay {
		for _, h := range day.Hour {
			hour, _, err := clock.ParseHourDay(h.Time)
			if err != nil {
				logging.Warn("skipping weatherapi hour with bad timestamp", zap.String("timestamp", h.Time), zap.Error(err))
				continue
			}
			out.Put(hour, forecast.Entry{Rain: h.ChanceOfRain, Temp: h.TempF})
		}
	}
	return out, nil
}
