package providers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
)

// WeatherGOV reads the hourly forecast from api.weather.gov. The forecast
// endpoint is resolved from a points lookup on every fetch.
type WeatherGOV struct {
	BaseURL string

	client   JSONGetter
	lat, lon float64
}

// Ensure WeatherGOV implements forecast.Provider
var _ forecast.Provider = (*WeatherGOV)(nil)

// NewWeatherGOV creates an api.weather.gov provider.
func NewWeatherGOV(client JSONGetter, lat, lon float64) *WeatherGOV {
	return &WeatherGOV{
		BaseURL: urls.WeatherGOVBase,
		client:  client,
		lat:     lat,
		lon:     lon,
	}
}

// Name returns the provider name
func (p *WeatherGOV) Name() string {
	return "weathergov"
}

type pointsResponse struct {
	Properties struct {
		ForecastHourly string `json:"forecastHourly"`
	} `json:"properties"`
}

type hourlyResponse struct {
	Properties struct {
		Periods []struct {
			StartTime                  string   `json:"startTime"`
			Temperature                *float64 `json:"temperature"`
			ProbabilityOfPrecipitation struct {
				Value *int `json:"value"`
			} `json:"probabilityOfPrecipitation"`
		} `json:"periods"`
	} `json:"properties"`
}

// ForecastURL resolves the hourly forecast endpoint for the configured point.
func (p *WeatherGOV) ForecastURL(ctx context.Context) (string, error) {
	var points pointsResponse
	if err := p.client.GetJSON(ctx, p.BaseURL+"/points/"+coord(p.lat)+","+coord(p.lon), &points); err != nil {
		return "", fmt.Errorf("weather.gov points: %w", err)
	}
	if points.Properties.ForecastHourly == "" {
		return "", fmt.Errorf("weather.gov points: no forecastHourly for %s,%s", coord(p.lat), coord(p.lon))
	}
	return points.Properties.ForecastHourly, nil
}

// Fetch scans the hourly periods until it reaches a period on another day
// at the current hour, i.e. one full day ahead.
func (p *WeatherGOV) Fetch(ctx context.Context, now forecast.LocalTime) (forecast.Forecast, error) {
	hourlyURL, err := p.ForecastURL(ctx)
	if err != nil {
		return nil, err
	}

	var hourly hourlyResponse
	if err := p.client.GetJSON(ctx, hourlyURL, &hourly); err != nil {
		return nil, fmt.Errorf("weather.gov hourly forecast: %w", err)
	}

	out := forecast.Forecast{}
	for _, period := range hourly.Properties.Periods {
		hour, day, err := clock.ParseHourDay(period.StartTime)
		if err != nil {
			logging.Warn("skipping weather.gov period with bad timestamp", zap.String("timestamp", period.StartTime), zap.Error(err))
			continue
		}
		if day != now.Day && hour == now.Hour {
			break
		}
		out.Put(hour, forecast.Entry{
			Rain: period.ProbabilityOfPrecipitation.Value,
			Temp: period.Temperature,
		})
	}
	return out, nil
}
