// Package providers implements forecast.Provider for WeatherAPI,
// AccuWeather and the US National Weather Service (api.weather.gov).
//
// All three share one retrying fetch.Client and normalize their responses
// to a forecast.Forecast keyed by the local hour printed in each timestamp.
package providers
