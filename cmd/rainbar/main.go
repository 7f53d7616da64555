// Rainbar drives an LED bar that shows the chance of rain for each hour of
// the day.
//
// The run command is the long-running display loop meant for a systemd
// unit. The remaining commands are one-shot helpers for setting up and
// inspecting a display: preview a forecast in the terminal, find displays
// on the LAN, mirror one live, check for updates and write a default
// configuration.
//
// Usage:
//
//	rainbar [command] [flags]
//
// See 'rainbar --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhaugh0/Rain-Chance-Monitor/internal/config"
	"github.com/jhaugh0/Rain-Chance-Monitor/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "rainbar",
	Short: "Hourly rain chance on an LED strip",
	Long: `Rainbar lights one LED per hour of the day and colors it by the
forecast chance of rain, with an optional second strip for temperature.

Use 'rainbar run' on the display itself. The other commands help set up
and inspect a display from any machine on the same network.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml (default: platform config directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rainbar %s (commit: %s)\n", version.Version, version.Commit)
	},
}

// loadConfig reads the configuration named by --config, or the default one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
