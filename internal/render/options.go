package render

import "github.com/jhaugh0/Rain-Chance-Monitor/internal/config"

// OptionsFromConfig derives rendering rules from the LED section.
func OptionsFromConfig(cfg config.LEDConfig) Options {
	var rain Gradient = Threshold{Yellow: cfg.YellowThreshold, Red: cfg.RedThreshold}
	if cfg.RainGradient == "palette" {
		rain = RainPalette
	}
	return Options{
		Brightness:     cfg.Brightness,
		Reversed:       cfg.Reversed(),
		Rain:           rain,
		Temperature:    TemperaturePalette,
		Recency:        cfg.Recency,
		RecencyDivisor: cfg.RecencyDivisor,
	}
}
