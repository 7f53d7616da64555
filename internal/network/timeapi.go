package network

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/urls"
)

// JSONGetter fetches and decodes a JSON document.
type JSONGetter interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// TimeSource resolves the local hour and day at the configured coordinates.
type TimeSource interface {
	Local(ctx context.Context) (forecast.LocalTime, error)
}

// TimeAPI looks up local time by coordinate.
type TimeAPI struct {
	Client    JSONGetter
	BaseURL   string
	Latitude  float64
	Longitude float64
}

// NewTimeAPI creates a TimeAPI for the given coordinates.
func NewTimeAPI(client JSONGetter, lat, lon float64) *TimeAPI {
	return &TimeAPI{Client: client, BaseURL: urls.TimeZoneLookup, Latitude: lat, Longitude: lon}
}

type timeAPIResponse struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

func (t *TimeAPI) url() string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(t.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(t.Longitude, 'f', 4, 64))
	return t.BaseURL + "?" + q.Encode()
}

// Local returns the hour and day of month reported by the service.
func (t *TimeAPI) Local(ctx context.Context) (forecast.LocalTime, error) {
	var resp timeAPIResponse
	if err := t.Client.GetJSON(ctx, t.url(), &resp); err != nil {
		return forecast.LocalTime{}, err
	}
	hour, day, err := clock.ParseHourDay(resp.DateTime)
	if err != nil {
		return forecast.LocalTime{}, fmt.Errorf("time lookup: %w", err)
	}
	return forecast.LocalTime{Hour: hour, Day: day}, nil
}
