package providers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
)

// JSONGetter is the part of fetch.Client the providers need.
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, out any) error
}

// New returns the provider selected by cfg.
func New(cfg config.ProviderConfig, loc config.LocationConfig, client JSONGetter) (forecast.Provider, error) {
	switch cfg.Kind {
	case config.ProviderWeatherAPI:
		return NewWeatherAPI(client, cfg.APIKey, loc.Latitude, loc.Longitude), nil
	case config.ProviderAccuweather:
		return NewAccuweather(client, cfg.APIKey, loc.Latitude, loc.Longitude), nil
	case config.ProviderWeatherGOV:
		return NewWeatherGOV(client, loc.Latitude, loc.Longitude), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Kind)
	}
}

// coord formats a coordinate with the precision every backend accepts.
func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
