package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/discovery"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/fetch"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/forecast/providers"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/led"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/logging"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/network"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/render"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/ui"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/update"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/watch"
)

// Helper command flags
var (
	previewHour  int
	scanTimeout  int
	outputFormat string
	watchAddr    string
	forceInit    bool
)

func init() {
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checkUpdateCmd)
	rootCmd.AddCommand(configCmd)
}

// previewCmd renders one forecast in the terminal
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch the forecast once and show what the strip would display",
	Long: `Fetch the forecast with the configured provider and render it the way the
strip would, without touching WiFi or the LEDs.

The current hour is looked up from the configured coordinates unless
--hour is given.`,
	Example: `  # Preview with the configured provider
  rainbar preview

  # Preview as if it were 3pm
  rainbar preview --hour 15`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewHour, "hour", -1, "Render as if the local hour were this (0-23)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(logLevel, ""); err != nil {
		return err
	}
	defer logging.Sync()

	if previewHour > 23 {
		return fmt.Errorf("--hour must be between 0 and 23, got %d", previewHour)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := fetch.NewClient(fetch.Options{
		Name:              cfg.Provider.Kind,
		UserAgent:         cfg.Provider.UserAgent,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
	})

	now := forecast.LocalTime{Hour: previewHour, Day: time.Now().Day()}
	if previewHour < 0 {
		local, err := network.NewTimeAPI(client, cfg.Location.Latitude, cfg.Location.Longitude).Local(ctx)
		if err != nil {
			t := time.Now()
			local = forecast.LocalTime{Hour: t.Hour(), Day: t.Day()}
			fmt.Fprintf(os.Stderr, "Warning: time lookup failed, using the local clock: %v\n", err)
		}
		now = local
	}

	provider, err := providers.New(cfg.Provider, cfg.Location, client)
	if err != nil {
		return err
	}

	fmt.Println(ui.NewHeader("FORECAST PREVIEW", "rainbar preview", []ui.Param{
		{Key: "Provider", Value: provider.Name()},
		{Key: "Location", Value: fmt.Sprintf("%.4f, %.4f", cfg.Location.Latitude, cfg.Location.Longitude)},
		{Key: "Hour", Value: fmt.Sprintf("%02d:00", now.Hour)},
		{Key: "Day", Value: strconv.Itoa(now.Day)},
	}).Render())

	f, err := provider.Fetch(ctx, now)
	if err != nil {
		fmt.Println(ui.NewFailureResult("Forecast fetch failed", err, []string{
			"Check the provider API key and user agent in the config file",
			"Check the coordinates are inside the provider's coverage",
			"Run with --log-level debug to see every request",
		}).Render())
		return fmt.Errorf("forecast fetch failed: %w", err)
	}

	ledCfg := cfg.LED
	ledCfg.Driver = led.DriverNone
	rain, temp, err := openStrips(ledCfg, os.Stdout)
	if err != nil {
		return err
	}
	defer closeStrips(rain, temp)

	window := forecast.BuildWindow(cfg.LED.FirstHour, cfg.LED.TotalCount).Map(f)
	engine := render.NewEngine(render.OptionsFromConfig(cfg.LED), rain, temp)
	if err := engine.Forecast(window, now.Hour); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	frames := make(map[string][]led.Color)
	for _, strip := range engine.Strips() {
		frames[strip.Name()] = strip.Frame()
	}

	fmt.Println(ui.WindowTable(window, now.Hour, cfg.LED.Reversed(), frames))
	fmt.Println()
	for _, strip := range engine.Strips() {
		fmt.Printf("%-12s %s\n", strip.Name(), led.RenderBlocks(nil, strip.Frame()))
	}
	return nil
}

// scanCmd discovers displays on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for displays on the network",
	Long: `Scan for displays using mDNS/DNS-SD discovery.

Displays advertise themselves when the status server is enabled with
advertise: true in their configuration.`,
	Example: `  # Scan for 5 seconds (default)
  rainbar scan

  # Longer scan, machine readable
  rainbar scan --timeout 15 --format json`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
	scanCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel, ""); err != nil {
		return err
	}
	defer logging.Sync()

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	if outputFormat != "json" {
		fmt.Printf("Scanning for displays (timeout: %ds)...\n\n", scanTimeout)
	}

	displays, err := scanner.Scan(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if outputFormat == "json" {
		data, err := json.MarshalIndent(displays, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(displays) == 0 {
		fmt.Println(ui.NewWarningResult("No displays found", []ui.Param{
			{Key: "Service", Value: discovery.ServiceType},
			{Key: "Hint", Value: "enable status.advertise on the display, or raise --timeout"},
		}).Render())
		return nil
	}

	result := ui.NewSuccessResult(fmt.Sprintf("Found %d display(s)", len(displays)), nil)
	for _, d := range displays {
		result.AddDetail(d.Instance, fmt.Sprintf("%s (version %s)", d.Addr(), d.Version()))
	}
	fmt.Println(result.Render())
	return nil
}

// watchCmd mirrors a display in the terminal
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Mirror a display's strip live in the terminal",
	Long: `Connect to a display's status server and mirror its strip, forecast
window and sleep schedule live.

Without --addr the first display found by mDNS is used.`,
	Example: `  # Watch the first display found
  rainbar watch

  # Watch a known display
  rainbar watch --addr 192.168.1.40:8088`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch.Run(watch.Options{Addr: watchAddr})
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchAddr, "addr", "", "Display host:port (skips discovery)")
}

// checkUpdateCmd compares the running build with the published one
var checkUpdateCmd = &cobra.Command{
	Use:   "check-update",
	Short: "Check whether a newer build is published",
	RunE:  runCheckUpdate,
}

func runCheckUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(logLevel, ""); err != nil {
		return err
	}
	defer logging.Sync()

	checker := update.New(cfg.Update, fetch.NewClient(fetch.Options{
		Name:      "update",
		UserAgent: cfg.Provider.UserAgent,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := checker.Check(ctx)
	if err != nil {
		fmt.Println(ui.NewFailureResult("Update check failed", err, []string{
			"Check the update.repo and update.branch settings",
			"GitHub rate limits anonymous API calls to 60 per hour",
		}).Render())
		return err
	}

	details := []ui.Param{
		{Key: "Local", Value: res.Local},
		{Key: "Remote", Value: res.Remote},
		{Key: "Branch", Value: checker.Branch},
	}
	if res.Available {
		fmt.Println(ui.NewWarningResult("Update available", details).Render())
	} else {
		fmt.Println(ui.NewSuccessResult("Up to date", details).Render())
	}
	return nil
}

// configCmd groups configuration file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  # Write the default config to the platform config directory
  rainbar config init

  # Overwrite an existing file
  rainbar config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(configPath, forceInit)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		fmt.Println("Set network.ssid, network.psk and location before running 'rainbar run'.")
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			p, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
