// blades is Twisty Blades, a knife-throwing game for the terminal.
//
// Usage:
//
//	blades                   - Start menu (same as 'blades menu')
//	blades play              - Play the campaign directly
//	blades menu              - Start menu with level select and scores
//	blades levels            - List campaign levels and which are unlocked
//	blades progress          - Show or reset campaign progress
//	blades scores            - Show high scores
//	blades serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.twisty-blades/scores.db)
//	--config <path>       - Custom level config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/twisty-blades/internal/config"
	"github.com/vovakirdan/twisty-blades/internal/games/blades"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagDebug      bool
)

var (
	logger  *log.Logger
	logFile *os.File // Closed when the command finishes
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blades",
	Short: "Twisty Blades - Throw knives at a spinning target",
	Long: `Twisty Blades is a knife-throwing game for the terminal.

Stick the required number of knives into the spinning target before the
clock runs out. A knife that hits another knife ends the level.

Available commands:
  play      - Play the campaign or endless mode directly
  menu      - Start screen with level select and scores
  levels    - List campaign levels
  progress  - Show or reset campaign progress
  scores    - View high scores
  serve     - Start SSH server for remote play

Examples:
  blades
  blades play --level 3
  blades play --endless --difficulty hard
  blades serve --ssh :2222`,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	Run: runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.twisty-blades/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom level config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup applies the global flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" && config.ParseDifficultyPreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	var err error
	if logger, err = newLogger(); err != nil {
		return err
	}

	blades.SetLogger(logger)
	blades.SetConfigPath(flagConfig)
	blades.SetDifficultyPreset(flagDifficulty)
	return nil
}

// newLogger writes to --log. The terminal belongs to the game, so without a
// log file everything is discarded.
func newLogger() (*log.Logger, error) {
	if flagLogPath == "" {
		return log.New(io.Discard), nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blades",
	})
	if flagDebug {
		l.SetLevel(log.DebugLevel)
	}
	return l, nil
}
