package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duotris/internal/config"
	"github.com/vovakirdan/duotris/internal/games/duotris"
	"github.com/vovakirdan/duotris/internal/platform/tui"
	"github.com/vovakirdan/duotris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (duotris or trio, default duotris).

Controls:
  Player 1   A/D move, S down, W rotate, E drop
  Player 2   Arrows move, Up rotate, Enter drop
  Player 3   J/L move, K down, I rotate, O drop (trio)
  P/Esc      - Pause
  R          - Restart
  B          - Back (when paused or game over)
  ?          - Show all controls
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Base fall intervals x1.5
  normal - Intervals as configured
  hard   - Base fall intervals x0.6
  fixed  - No speedup as levels rise

Examples:
  duotris play
  duotris play trio
  duotris play --difficulty hard
  duotris play --config ./my-duotris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
}

// addGameFlags registers the flags that tune the game before it starts.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// applyGameFlags validates --config and --difficulty for the mode and hands
// them to the game package.
func applyGameFlags(mode string) error {
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := config.Load(mode, flagConfig); err != nil {
		return err
	}
	duotris.SetConfigPath(flagConfig)
	duotris.SetDifficultyPreset(flagDifficulty)
	duotris.SetLogger(logger)
	return nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := string(duotris.ModeDuo)
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'duotris list' to see available modes.")
		os.Exit(1)
	}

	if err := applyGameFlags(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	// Run the game
	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
