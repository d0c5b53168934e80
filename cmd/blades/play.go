package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/twisty-blades/internal/core"
	"github.com/vovakirdan/twisty-blades/internal/games/blades"
	"github.com/vovakirdan/twisty-blades/internal/knife"
	"github.com/vovakirdan/twisty-blades/internal/platform/tui"
	"github.com/vovakirdan/twisty-blades/internal/registry"
	"github.com/vovakirdan/twisty-blades/internal/storage"
)

var (
	flagLevel   int
	flagEndless bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Twisty Blades",
	Long: `Start playing straight away, skipping the menu.

Controls:
  Space      - Start charging, press again to throw
  Enter      - Next level after a win
  P          - Pause
  R          - Restart the level
  Esc/B      - Back
  Q/Ctrl+C   - Quit

Difficulty options (endless mode):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  blades play
  blades play --level 4
  blades play --endless --difficulty easy
  blades play --config ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start at (must be unlocked)")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID := blades.IDCampaign
	if flagEndless {
		gameID = blades.IDEndless
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	if flagLevel != 0 && !flagEndless {
		if err := checkLevel(tui.ProgressFor(store, blades.IDCampaign, ""), flagLevel); err != nil {
			closeStore(store)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	tui.Prepare(game, store, "", flagLevel)

	_, runErr := tui.Run(game, store, runtimeConfig())

	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// checkLevel rejects levels that do not exist or are still locked.
func checkLevel(progress knife.ProgressStore, level int) error {
	levels := blades.Campaign()
	if level < 1 || level > len(levels) {
		return fmt.Errorf("no level %d (the campaign has %d)", level, len(levels))
	}
	highest, err := progress.LoadProgress()
	if err != nil {
		return err
	}
	if !knife.Unlocked(level-1, highest) {
		return fmt.Errorf("level %d is locked: clear level %d first", level, highest+2)
	}
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
