package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tiles/internal/platform/tui"
	"github.com/vovakirdan/tui-tiles/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available lane layouts",
	Long:  `Shows the lane layouts that can be selected with --layout or lanes.layout.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	layouts := registry.List()

	if len(layouts) == 0 {
		fmt.Println("No layouts available.")
		return
	}

	fmt.Println("Available layouts:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range layouts {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Keys", "Title")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "----", "-----")

	for _, info := range layouts {
		l, err := registry.Get(info.ID)
		if err != nil {
			continue
		}
		labels := make([]string, len(l.Keys))
		for i, k := range l.Keys {
			labels[i] = tui.KeyLabel(k)
		}
		fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, info.ID, strings.Join(labels, " "), info.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tiles play --layout <id>' to play with a layout.")
}
