// Package config loads the display configuration.
//
// The configuration is a YAML file plus optional secrets from a .env file
// and environment variables. It is read once at startup and treated as an
// immutable snapshot for the rest of the process lifetime.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/rainbar/config.yaml or $HOME/.config/rainbar/config.yaml
//   - macOS: $HOME/.config/rainbar/config.yaml
//   - Windows: %LOCALAPPDATA%\rainbar\config.yaml
//
// A .env file next to the configuration file (or in the working directory)
// is loaded first, then these variables override the YAML values:
//
//	RAINBAR_SSID, RAINBAR_PSK
//	RAINBAR_WEATHERAPI_KEY, RAINBAR_ACCUWEATHER_KEY
//	RAINBAR_LATITUDE, RAINBAR_LONGITUDE
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.LED.TotalCount, cfg.Provider.Kind)
package config
