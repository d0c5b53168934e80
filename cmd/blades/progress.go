package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/platform/tui"
	"github.com/vovakirdan/twisty-blades/internal/storage"
)

var flagResetProgress bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset campaign progress",
	Long: `Shows the highest campaign level cleared on this machine.

Examples:
  blades progress
  blades progress --reset`,
	Args: cobra.NoArgs,
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagResetProgress, "reset", false, "Forget every cleared level")
}

func runProgress(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResetProgress {
		if err := store.ResetProgress(tui.ProgressID(blades.IDCampaign, "")); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Progress reset. Only level 1 is unlocked.")
		return
	}

	highest, err := tui.ProgressFor(store, blades.IDCampaign, "").LoadProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
		os.Exit(1)
	}

	total := len(blades.Campaign())
	if highest < 0 {
		fmt.Printf("No levels cleared yet (0/%d).\n", total)
		return
	}
	fmt.Printf("Cleared %d/%d levels.\n", min(highest+1, total), total)
	if highest+1 < total {
		fmt.Printf("Next: 'blades play --level %d'\n", highest+2)
	} else {
		fmt.Println("Campaign complete!")
	}
}
