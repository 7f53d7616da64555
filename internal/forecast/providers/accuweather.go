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

// Accuweather resolves a location key once, then reads the 12 hour forecast.
type Accuweather struct {
	BaseURL string

	client   JSONGetter
	apiKey   string
	lat, lon float64

	// locationKey is cached for the process lifetime once resolved.
	locationKey string
}

// Ensure Accuweather implements forecast.Provider
var _ forecast.Provider = (*Accuweather)(nil)

// NewAccuweather creates an AccuWeather provider.
func NewAccuweather(client JSONGetter, apiKey string, lat, lon float64) *Accuweather {
	return &Accuweather{
		BaseURL: urls.AccuweatherBase,
		client:  client,
		apiKey:  apiKey,
		lat:     lat,
		lon:     lon,
	}
}

// Name returns the provider name
func (p *Accuweather) Name() string {
	return "accuweather"
}

// LocationKey returns the cached location key, resolving it when empty.
func (p *Accuweather) LocationKey(ctx context.Context) (string, error) {
	if p.locationKey != "" {
		return p.locationKey, nil
	}

	q := url.Values{}
	q.Set("apikey", p.apiKey)
	q.Set("q", coord(p.lat)+","+coord(p.lon))

	var resp struct {
		Key string `json:"Key"`
	}
	if err := p.client.GetJSON(ctx, p.BaseURL+"/locations/v1/cities/geoposition/search?"+q.Encode(), &resp); err != nil {
		return "", fmt.Errorf("accuweather location key: %w", err)
	}
	if resp.Key == "" {
		return "", fmt.Errorf("accuweather location key: empty key for %s,%s", coord(p.lat), coord(p.lon))
	}

	logging.Info("resolved accuweather location key", zap.String("location_key", resp.Key))
	p.locationKey = resp.Key
	return p.locationKey, nil
}

type accuweatherHour struct {
	DateTime                 string `json:"DateTime"`
	PrecipitationProbability *int   `json:"PrecipitationProbability"`
	Temperature              *struct {
		Value float64 `json:"Value"`
		Unit  string  `json:"Unit"`
	} `json:"Temperature"`
}

// Fetch returns PrecipitationProbability and temperature for the next 12 hours.
func (p *Accuweather) Fetch(ctx context.Context, _ forecast.LocalTime) (forecast.Forecast, error) {
	key, err := p.LocationKey(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("apikey", p.apiKey)

	var hours []accuweatherHour
	if err := p.client.GetJSON(ctx, p.BaseURL+"/forecasts/v1/hourly/12hour/"+url.PathEscape(key)+"?"+q.Encode(), &hours); err != nil {
		return nil, fmt.Errorf("accuweather forecast: %w", err)
	}

	out := forecast.Forecast{}
	for _, h := range hours {
		hour, _, err := clock.ParseHourDay(h.DateTime)
		if err != nil {
			logging.Warn("skipping accuweather hour with bad timestamp", zap.String("timestamp", h.DateTime), zap.Error(err))
			continue
		}
		e := forecast.Entry{Rain: h.PrecipitationProbability}
		if h.Temperature != nil {
			e.Temp = forecast.Float(h.Temperature.Value)
		}
		out.Put(hour, e)
	}
	return out, nil
}
