package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "rainbar"
	configFile = "config.yaml"
	envFile    = ".env"
)

// Environment overrides.
const (
	EnvSSID           = "RAINBAR_SSID"
	EnvPSK            = "RAINBAR_PSK"
	EnvWeatherAPIKey  = "RAINBAR_WEATHERAPI_KEY"
	EnvAccuweatherKey = "RAINBAR_ACCUWEATHER_KEY"
	EnvLatitude       = "RAINBAR_LATITUDE"
	EnvLongitude      = "RAINBAR_LONGITUDE"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/rainbar or $HOME/.config/rainbar
//   - macOS: $HOME/.config/rainbar (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\rainbar
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads the configuration at path (the default path when empty),
// applies .env and environment overrides, and validates the result.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), envFile), envFile); err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads every existing file in paths. Variables already present in
// the environment win.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvSSID); v != "" {
		cfg.Network.SSID = v
	}
	if v := os.Getenv(EnvPSK); v != "" {
		cfg.Network.PSK = v
	}

	switch cfg.Provider.Kind {
	case ProviderWeatherAPI:
		if v := os.Getenv(EnvWeatherAPIKey); v != "" {
			cfg.Provider.APIKey = v
		}
	case ProviderAccuweather:
		if v := os.Getenv(EnvAccuweatherKey); v != "" {
			cfg.Provider.APIKey = v
		}
	}

	if v := os.Getenv(EnvLatitude); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLatitude, err)
		}
		cfg.Location.Latitude = f
	}
	if v := os.Getenv(EnvLongitude); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvLongitude, err)
		}
		cfg.Location.Longitude = f
	}
	return nil
}

// Save writes cfg to path. Performs an atomic write to prevent corruption on crash.
func Save(cfg *Config, path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Rainbar Configuration File
# Hourly rain forecast on an addressable LED strip.
#
# Secrets (ssid, psk, api_key) may be left empty here and supplied through
# a .env file in this directory or the RAINBAR_* environment variables.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	// Secrets may be present, so the file is user-only.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes the default configuration to path (the default
// path when empty) and returns the path written. An existing file is kept
// unless force is set.
func CreateDefaultConfig(path string, force bool) (string, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	return path, Save(Default(), path)
}
