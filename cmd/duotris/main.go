// duotris is a two-player shared-well falling block game for the terminal.
//
// Usage:
//
//	duotris                   - Start menu to pick a mode interactively
//	duotris list              - List available modes
//	duotris play [mode]       - Play a mode (default: duotris)
//	duotris scores [mode]     - Show high scores and match history
//	duotris simulate          - Run a seeded headless match and print the result
//	duotris serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.duotris/scores.db)
//	--log-level <level>   - Set log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/duotris/internal/core"
	"github.com/vovakirdan/duotris/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/duotris/internal/games/duotris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

// logger is shared by all subcommands and configured before any of them run.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "duotris",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duotris",
	Short: "Duotris - two players, one well",
	Long: `Duotris is a falling block game where two players share a single
well. Each player steers their own piece; pieces collide with each other
and with the stack, and every cleared line counts for the team.

Available commands:
  list      - Show all available modes
  play      - Play a mode directly
  menu      - Interactive mode picker menu
  scores    - View high scores
  simulate  - Run a headless seeded match
  serve     - Start SSH server for remote play

Examples:
  duotris
  duotris play
  duotris play trio --difficulty hard
  duotris simulate --seed 42 --ticks 3000 --random-input
  duotris serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.duotris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// openStore opens the scores database. The game works without one, so a
// failure only logs a warning and returns nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// terminalSize returns the current terminal size or 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the platform config from global flags and the terminal.
func runtimeConfig() core.RuntimeConfig {
	w, h := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
