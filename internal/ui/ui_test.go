package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
)

func TestHeader_Render(t *testing.T) {
	out := NewHeader("Forecast Preview", "rainbar preview", []Param{
		{Key: "Provider", Value: "weathergov"},
		{Key: "Window", Value: "08:00 +15"},
	}).SetWidth(80).Render()

	for _, want := range []string{"FORECAST PREVIEW", "rainbar preview", "Provider:", "weathergov", "Window:"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Provider:") > strings.Index(out, "Window:") {
		t.Error("params rendered out of order")
	}
}

func TestResult_Render(t *testing.T) {
	ok := NewSuccessResult("Update check", []Param{{Key: "Remote", Value: "abc123"}}).SetWidth(80).Render()
	if !strings.Contains(ok, "SUCCESS") || !strings.Contains(ok, "abc123") {
		t.Errorf("success box:\n%s", ok)
	}

	fail := NewFailureResult("Fetch failed", errors.New("503 from provider"), []string{"Check the API key"}).SetWidth(80).Render()
	for _, want := range []string{"FAILED", "503 from provider", "Troubleshooting:", "Check the API key"} {
		if !strings.Contains(fail, want) {
			t.Errorf("failure box missing %q", want)
		}
	}

	warn := NewWarningResult("Update available", nil).AddDetail("Local", "aaa").SetWidth(80).Render()
	if !strings.Contains(warn, "WARNING") || !strings.Contains(warn, "aaa") {
		t.Errorf("warning box:\n%s", warn)
	}
}

func TestWindowTable(t *testing.T) {
	w := forecast.BuildWindow(8, 3).Map(forecast.Forecast{
		9:  {Rain: forecast.Int(20), Temp: forecast.Float(71.6)},
		10: {},
	})
	frames := map[string][]led.Color{"rain": {{}, {G: 255}, {}}}

	out := WindowTable(w, 9, false, frames)
	for _, want := range []string{"Hour", "08:00", "09:00", "10:00", "20%", "72°", "#00ff00", "rain"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "temperature") {
		t.Error("table shows a strip without a frame")
	}
	if !strings.Contains(out, CurrentMarker) {
		t.Error("current hour not marked")
	}
}

func TestFormat(t *testing.T) {
	if got := FormatRain(forecast.Entry{}); got != "-" {
		t.Errorf("FormatRain(empty) = %q", got)
	}
	if got := FormatRain(forecast.Entry{Rain: forecast.Int(0)}); got != "0%" {
		t.Errorf("FormatRain(0) = %q", got)
	}
	if got := FormatTemp(forecast.Entry{Temp: forecast.Float(-3.4)}); got != "-3°" {
		t.Errorf("FormatTemp(-3.4) = %q", got)
	}
	if !strings.Contains(Swatch(led.Off), "off") {
		t.Error("Swatch(Off) should read off")
	}
}
