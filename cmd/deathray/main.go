// deathray is a terminal arcade game: fire a reflecting death ray at falling
// blocks and catch the rest in colored buckets.
//
// Usage:
//
//	deathray                 - Start the main menu
//	deathray play            - Play a run directly
//	deathray serve           - Start SSH server for remote play
//	deathray scores          - Show recorded runs
//	deathray config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.deathray/runs.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deathray/internal/config"
	"github.com/vovakirdan/deathray/internal/games/deathray"
)

const gameID = "deathray"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "deathray",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deathray",
	Short: "Death Ray - blast and catch falling blocks in your terminal",
	Long: `Death Ray is a terminal arcade game.

Blocks fall toward two buckets. Catch red blocks in the red bucket and
green blocks in the green bucket. Special blocks must be destroyed with
the death ray, which bounces off mirrors. Running the ray drains the
battery; hitting the wrong blocks ends the run.

Available commands:
  play     - Play a run directly
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  config   - Print the effective configuration

Run without a command to open the main menu.

Examples:
  deathray
  deathray play --difficulty hard
  deathray serve --ssh :2222
  deathray scores --limit 20`,
	PersistentPreRun: applyGameFlags,
	Run:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.deathray/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", os.Getenv("USER"), "Player name stored with runs")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// applyGameFlags passes config flags to the game before any instance is created.
func applyGameFlags(_ *cobra.Command, _ []string) {
	deathray.SetConfigPath(flagConfig)
	deathray.SetDifficultyPreset(flagDifficulty)

	if flagConfig != "" {
		if _, _, err := config.Load(flagConfig); err != nil {
			logger.Warn("Config cannot be used, falling back to defaults", "error", err)
		}
	}
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			logger.Warn("Unknown difficulty preset, ignoring it", "difficulty", flagDifficulty)
		}
	}
	if flagFPS <= 0 {
		logger.Warn("Invalid tick rate, using 60", "fps", flagFPS)
		flagFPS = 60
	}
}
