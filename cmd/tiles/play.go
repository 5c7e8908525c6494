package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tiles/internal/core"
	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play on the local terminal",
	Long: `Start a game session on the local terminal.

Controls:
  Lane keys  - Hit the lane (default layout: D F J K)
  ?          - Toggle help
  Esc/Ctrl+C - Quit

Switching away from the terminal pauses the game when the terminal reports
focus changes.

Examples:
  tiles play
  tiles play --layout 4k-arrows
  tiles play --seed 42 --log-file tiles.log --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := fileLogger("tiles")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger.Debug("configuration loaded", "source", source, "layout", cfg.Lanes.Layout)

	rc := core.DefaultConfig()
	rc.FPS = cfg.Timing.FPS
	rc.Seed = flagSeed

	// Get terminal size early so the first frame fits
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	runErr := tui.Run(context.Background(), tui.SessionOptions{
		Config: cfg,
		Seed:   rc.Seed,
		Logger: logger,
	}, rc)
	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
