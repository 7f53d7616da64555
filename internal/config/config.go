package config

import "time"

// Provider kinds.
const (
	ProviderWeatherAPI  = "weatherapi"
	ProviderAccuweather = "accuweather"
	ProviderWeatherGOV  = "weathergov"
)

// Config is the whole configuration file.
type Config struct {
	Network  NetworkConfig  `yaml:"network"`
	Location LocationConfig `yaml:"location"`
	Provider ProviderConfig `yaml:"provider"`
	LED      LEDConfig      `yaml:"led"`
	Status   StatusConfig   `yaml:"status"`
	Update   UpdateConfig   `yaml:"update"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NetworkConfig holds WiFi credentials and the retry tunables of the network lifecycle.
type NetworkConfig struct {
	Radio     string `yaml:"radio" validate:"oneof=nmcli static"` // nmcli drives NetworkManager, static assumes a wired link
	SSID      string `yaml:"ssid,omitempty"`
	PSK       string `yaml:"psk,omitempty"`
	Interface string `yaml:"interface,omitempty"` // nmcli device name, e.g. wlan0

	MaxRequestRetries         int `yaml:"max_request_retries" validate:"min=1"`
	RequestRetryDelaySeconds  int `yaml:"request_retry_delay_seconds" validate:"min=0"`
	InternetCheckRetrySeconds int `yaml:"internet_check_retry_seconds" validate:"min=0"`
	TriesBeforeReconnect      int `yaml:"tries_before_reconnect" validate:"min=1"`
	MaxInternetTries          int `yaml:"max_internet_tries" validate:"min=1"`
	ReconnectPauseSeconds     int `yaml:"reconnect_pause_seconds" validate:"min=0"`
	AssociationTimeoutSeconds int `yaml:"association_timeout_seconds" validate:"min=0"` // 0 polls forever

	NTPServer string `yaml:"ntp_server" validate:"required"`
	Reset     string `yaml:"reset" validate:"oneof=exit reboot"` // hard reset strategy
}

// RequestRetryDelay is the pause between attempts of a single request.
func (n NetworkConfig) RequestRetryDelay() time.Duration {
	return time.Duration(n.RequestRetryDelaySeconds) * time.Second
}

// InternetCheckRetry is the pause between reachability probes.
func (n NetworkConfig) InternetCheckRetry() time.Duration {
	return time.Duration(n.InternetCheckRetrySeconds) * time.Second
}

// ReconnectPause is the pause between disconnect and reconnect during remediation.
func (n NetworkConfig) ReconnectPause() time.Duration {
	return time.Duration(n.ReconnectPauseSeconds) * time.Second
}

// AssociationTimeout bounds the association poll; zero means unbounded.
func (n NetworkConfig) AssociationTimeout() time.Duration {
	return time.Duration(n.AssociationTimeoutSeconds) * time.Second
}

// LocationConfig holds the coordinates used by every provider.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `yaml:"longitude" validate:"min=-180,max=180"`
	Timezone  string  `yaml:"timezone,omitempty"` // IANA name used for the local clock, empty for host zone
}

// ProviderConfig selects the weather backend.
type ProviderConfig struct {
	Kind              string `yaml:"kind" validate:"oneof=weatherapi accuweather weathergov"`
	APIKey            string `yaml:"api_key,omitempty"`
	UserAgent         string `yaml:"user_agent" validate:"required"` // api.weather.gov rejects anonymous clients
	RequestsPerMinute int    `yaml:"requests_per_minute" validate:"min=0"`
}

// Keyed reports whether the selected provider needs an API key.
func (p ProviderConfig) Keyed() bool {
	return p.Kind == ProviderWeatherAPI || p.Kind == ProviderAccuweather
}

// LEDConfig describes the rain strip and its rendering rules.
type LEDConfig struct {
	Driver  string `yaml:"driver" validate:"oneof=spi gpio terminal none"`
	SPIPort string `yaml:"spi_port,omitempty"` // periph SPI port name, empty for the first one
	GPIOPin int    `yaml:"gpio_pin" validate:"min=0"`

	TotalCount    int    `yaml:"total_count" validate:"min=1,max=24"`
	FirstHour     int    `yaml:"first_hour" validate:"min=0,max=23"`
	StepDirection string `yaml:"step_direction" validate:"oneof=backwards forwards"`

	YellowThreshold int `yaml:"yellow_threshold" validate:"min=0,max=100"`
	RedThreshold    int `yaml:"red_threshold" validate:"min=0,max=100,gtfield=YellowThreshold"`
	Brightness      int `yaml:"brightness" validate:"min=0,max=100"`

	OnHour  int `yaml:"on_hour" validate:"min=0,max=23"`
	OffHour int `yaml:"off_hour" validate:"min=0,max=23"`

	RainGradient   string `yaml:"rain_gradient" validate:"oneof=threshold palette"`
	Recency        string `yaml:"recency" validate:"oneof=previous earlier"`
	RecencyDivisor int    `yaml:"recency_divisor" validate:"min=1"`

	Temperature TemperatureStripConfig `yaml:"temperature"`
}

// Reversed reports whether slot 0 sits at the far end of the strip.
func (l LEDConfig) Reversed() bool {
	return l.StepDirection == "backwards"
}

// TemperatureStripConfig describes the optional second strip.
type TemperatureStripConfig struct {
	Enabled bool   `yaml:"enabled"`
	SPIPort string `yaml:"spi_port,omitempty"`
	GPIOPin int    `yaml:"gpio_pin" validate:"min=0"`
	Count   int    `yaml:"count,omitempty" validate:"min=0"` // 0 means same as the rain strip
}

// StatusConfig controls the local status server.
type StatusConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Listen    string `yaml:"listen" validate:"required"`
	Advertise bool   `yaml:"advertise"`
	Name      string `yaml:"name,omitempty"` // mDNS instance name, hostname when empty
}

// UpdateConfig controls the remote version check.
type UpdateConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Repo       string `yaml:"repo" validate:"required"`
	Branch     string `yaml:"branch" validate:"required"`
	MarkerFile string `yaml:"marker_file,omitempty"`
}

// LoggingConfig controls console logging and the error record.
type LoggingConfig struct {
	Level     string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	ErrorFile string `yaml:"error_file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Network: NetworkConfig{
			Radio:                     "nmcli",
			Interface:                 "wlan0",
			MaxRequestRetries:         5,
			RequestRetryDelaySeconds:  5,
			InternetCheckRetrySeconds: 5,
			TriesBeforeReconnect:      10,
			MaxInternetTries:          20,
			ReconnectPauseSeconds:     20,
			AssociationTimeoutSeconds: 0,
			NTPServer:                 "pool.ntp.org",
			Reset:                     "exit",
		},
		Provider: ProviderConfig{
			Kind:              ProviderWeatherGOV,
			UserAgent:         "rainbar (github.com/jhaugh0/Rain-Chance-Monitor)",
			RequestsPerMinute: 30,
		},
		LED: LEDConfig{
			Driver:          "spi",
			GPIOPin:         0,
			TotalCount:      15,
			FirstHour:       8,
			StepDirection:   "backwards",
			YellowThreshold: 30,
			RedThreshold:    55,
			Brightness:      20,
			OnHour:          7,
			OffHour:         22,
			RainGradient:    "threshold",
			Recency:         "previous",
			RecencyDivisor:  3,
		},
		Status: StatusConfig{
			Listen: ":8088",
		},
		Update: UpdateConfig{
			Repo:   "jhaugh0/Rain-Chance-Monitor",
			Branch: "main",
		},
	}
}
