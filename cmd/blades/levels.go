package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/knife"
	"github.com/vovakirdan/twisty-blades/internal/platform/tui"
	"github.com/vovakirdan/twisty-blades/internal/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows every campaign level with its knives, time limit and whether
it is unlocked. Respects --config and --difficulty.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	levels := blades.Campaign()
	if len(levels) == 0 {
		fmt.Println("No levels configured.")
		return
	}

	highest := -1
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		defer store.Close()
		if h, loadErr := tui.ProgressFor(store, blades.IDCampaign, "").LoadProgress(); loadErr == nil {
			highest = h
		}
	}

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, l := range levels {
		if len(l.Name) > maxNameLen {
			maxNameLen = len(l.Name)
		}
	}

	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "#", maxNameLen, "Name", "Knives", "Time", "Status")
	fmt.Printf("  %-3s  %-*s  %-6s  %-6s  %s\n", "-", maxNameLen, "----", "------", "----", "------")

	for i, l := range levels {
		status := "locked"
		switch {
		case i <= highest:
			status = "cleared"
		case knife.Unlocked(i, highest):
			status = "open"
		}
		fmt.Printf("  %-3d  %-*s  %-6d  %-6s  %s\n", i+1, maxNameLen, l.Name, l.RequiredHits, fmt.Sprintf("%.0fs", l.TimeLimit), status)
	}

	fmt.Println()
	fmt.Println("Run 'blades play --level <n>' to play an unlocked level.")
}
