// tiles is a falling-tile rhythm game for the terminal.
//
// Usage:
//
//	tiles play              - Play on the local terminal
//	tiles serve             - Start SSH server for remote play
//	tiles list              - List available lane layouts
//	tiles config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Custom config YAML (default search: ~/.tiles/configs, ./configs)
//	--layout <id>      - Lane layout preset
//	--tick-rate <hz>   - Logic loop frequency (default from config: 45)
//	--seed <value>     - RNG seed for reproducible spawn sequences
//	--log-file <path>  - Write logs to a file
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagLayout   string
	flagTickRate int
	flagSeed     int64
	flagLogFile  string
	flagDebug    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tiles",
	Short: "Tiles - a falling-tile rhythm game in your terminal",
	Long: `Tiles scrolls colored tiles down a set of lanes. Hit the lane's key as a
tile reaches the strike line at the bottom.

Available commands:
  play     - Play on the local terminal
  serve    - Start SSH server for remote play
  list     - Show available lane layouts
  config   - Print the effective configuration

Examples:
  tiles play
  tiles play --layout 6k --tick-rate 60
  tiles serve --ssh :2222
  tiles config --config ./my-tiles.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLayout, "layout", "", "Lane layout preset (see 'tiles list')")
	rootCmd.PersistentFlags().IntVar(&flagTickRate, "tick-rate", 0, "Logic loop frequency in Hz (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration and applies command line overrides.
func loadConfig() (config.TilesConfig, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyOverrides(&cfg, config.Overrides{
		TickRate: flagTickRate,
		Layout:   flagLayout,
	})
	return cfg, source, nil
}

// newLogger creates a logger writing to w, honoring --debug.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger returns a logger for --log-file, or a discarding one when the
// flag is empty. The returned close function is never nil.
func fileLogger(prefix string) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return newLogger(io.Discard, prefix), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, prefix), func() { f.Close() }, nil
}
