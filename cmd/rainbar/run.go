package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/clock"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/discovery"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/fetch"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast/providers"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/monitor"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/network"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/render"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/retry"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/status"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/update"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/version"
)

const (
	// probeUserAgent makes the public IP service answer in plain text.
	probeUserAgent = "curl/8.5.0"

	// exitConnectivityLost is the exit code of the "exit" reset strategy.
	exitConnectivityLost = 3

	shutdownTimeout = 5 * time.Second
)

// Run command flags
var (
	runDriver string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the display loop",
	Long: `Run the display loop until interrupted.

Every hour the display joins WiFi, confirms internet access, syncs the
clock, fetches the forecast and paints the strip, then drops the link and
sleeps until the next hour. Overnight the strip is dark and the display
sleeps through to the on hour.

When connectivity cannot be restored the configured reset strategy runs:
"exit" leaves with status 3 for the supervisor to restart, "reboot"
reboots the host.`,
	Example: `  # Run with the default configuration
  rainbar run

  # Try the loop on a workstation without LEDs
  rainbar run --driver terminal --log-level debug`,
	RunE: runDisplay,
}

func init() {
	runCmd.Flags().StringVar(&runDriver, "driver", "", "Override the LED driver (spi, gpio, terminal, none)")

	rootCmd.AddCommand(runCmd)
}

func runDisplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runDriver != "" {
		cfg.LED.Driver = runDriver
	}

	level := logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if err := logging.Initialize(level, cfg.Logging.ErrorFile); err != nil {
		return err
	}
	defer logging.Sync()

	logging.Info("starting rainbar",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("provider", cfg.Provider.Kind),
		zap.String("driver", cfg.LED.Driver))

	loc, err := location(cfg.Location)
	if err != nil {
		return err
	}
	sysClock := clock.NewSystem(loc)

	rain, temp, err := openStrips(cfg.LED, os.Stdout)
	if err != nil {
		return err
	}
	defer closeStrips(rain, temp)

	engine := render.NewEngine(render.OptionsFromConfig(cfg.LED), rain, temp)

	policy := retry.Policy{
		MaxAttempts: cfg.Network.MaxRequestRetries,
		Delay:       cfg.Network.RequestRetryDelay(),
	}
	provider, err := providers.New(cfg.Provider, cfg.Location, fetch.NewClient(fetch.Options{
		Name:              cfg.Provider.Kind,
		UserAgent:         cfg.Provider.UserAgent,
		Policy:            policy,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
	}))
	if err != nil {
		return err
	}

	// The ladder in ValidateInternet does its own retrying and escalation.
	probeClient := fetch.NewClient(fetch.Options{
		Name:      "probe",
		UserAgent: probeUserAgent,
		Policy:    retry.Policy{MaxAttempts: 1},
		NoBreaker: true,
	})
	timeClient := fetch.NewClient(fetch.Options{
		Name:      "timeapi",
		UserAgent: cfg.Provider.UserAgent,
		Policy:    policy,
	})

	lifecycle := network.New(network.SettingsFromConfig(cfg.Network), network.Deps{
		Radio:     newRadio(cfg.Network),
		Prober:    network.NewHTTPProber(probeClient),
		Syncer:    clock.NewNTPSyncer(cfg.Network.NTPServer, sysClock),
		Time:      network.NewTimeAPI(timeClient, cfg.Location.Latitude, cfg.Location.Longitude),
		Resetter:  newResetter(cfg.Network),
		Indicator: engine,
		Clock:     sysClock,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := monitor.Deps{
		Network:  lifecycle,
		Provider: provider,
		Renderer: engine,
		Clock:    sysClock,
	}

	if cfg.Update.Enabled {
		deps.Updater = update.New(cfg.Update, fetch.NewClient(fetch.Options{
			Name:      "update",
			UserAgent: cfg.Provider.UserAgent,
			Policy:    policy,
		}))
	}

	if cfg.Status.Enabled {
		board := status.NewBoard(displayName(cfg.Status))
		for _, strip := range engine.Strips() {
			strip.OnFlush(board.RecordFrame)
		}
		lifecycle.OnStateChange(func(_, to network.State) {
			board.RecordNetwork(to.String())
		})
		deps.Reporter = board

		srv := status.NewServer(board, cfg.Status.Listen)
		if err := srv.Listen(); err != nil {
			return err
		}
		go func() {
			if err := srv.Serve(); err != nil {
				logging.Error("status server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		if cfg.Status.Advertise {
			ad, err := discovery.Advertise(displayName(cfg.Status), srv.Port(), version.Version)
			if err != nil {
				logging.Warn("mDNS advertisement failed", zap.Error(err))
			} else {
				defer ad.Shutdown()
			}
		}
	}

	runner := monitor.NewRunner(monitor.SettingsFromConfig(cfg.LED), deps)
	err = runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logging.Info("interrupted, turning the strip off")
		_ = engine.Off()
		return nil
	}
	return err
}

// location resolves the configured time zone, the host zone when empty.
func location(cfg config.LocationConfig) (*time.Location, error) {
	if cfg.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// openStrips opens the rain strip and, when enabled, the temperature strip.
// temp is nil when disabled.
func openStrips(cfg config.LEDConfig, out io.Writer) (rain, temp *led.Strip, err error) {
	rain, err = led.OpenStrip(led.Target{
		Name:    "rain",
		Driver:  cfg.Driver,
		SPIPort: cfg.SPIPort,
		GPIOPin: cfg.GPIOPin,
		Count:   cfg.TotalCount,
	}, out)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open rain strip: %w", err)
	}

	if !cfg.Temperature.Enabled {
		return rain, nil, nil
	}

	count := cfg.Temperature.Count
	if count == 0 {
		count = cfg.TotalCount
	}
	temp, err = led.OpenStrip(led.Target{
		Name:    "temperature",
		Driver:  cfg.Driver,
		SPIPort: cfg.Temperature.SPIPort,
		GPIOPin: cfg.Temperature.GPIOPin,
		Count:   count,
	}, out)
	if err != nil {
		_ = rain.Close()
		return nil, nil, fmt.Errorf("failed to open temperature strip: %w", err)
	}
	return rain, temp, nil
}

func closeStrips(strips ...*led.Strip) {
	for _, s := range strips {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil {
			logging.Warn("failed to close strip", zap.String("strip", s.Name()), zap.Error(err))
		}
	}
}

func newRadio(cfg config.NetworkConfig) network.Radio {
	if cfg.Radio == "static" {
		return network.NewStaticRadio()
	}
	nm := network.DefaultNMCLIConfig()
	if cfg.Interface != "" {
		nm.Interface = cfg.Interface
	}
	return network.NewNMCLIRadio(nm, logging.GetLogger())
}

func newResetter(cfg config.NetworkConfig) network.Resetter {
	if cfg.Reset == "reboot" {
		return network.NewRebootResetter(network.ExecRunner(30 * time.Second))
	}
	return network.NewExitResetter(exitConnectivityLost)
}

// displayName is the mDNS instance and status board name.
func displayName(cfg config.StatusConfig) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "rainbar"
}
