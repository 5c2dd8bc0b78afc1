package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deathray/internal/core"
	"github.com/vovakirdan/deathray/internal/platform/tui"
	"github.com/vovakirdan/deathray/internal/registry"
	"github.com/vovakirdan/deathray/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run",
	Long: `Start a Death Ray run directly, skipping the menu.

Controls:
  A/D        - Aim the cannon
  W/S        - Move the cannon along the left wall
  Left/Right - Move the active bucket
  Tab        - Switch the active bucket
  Space      - Fire the death ray
  I/O        - Shorter/longer spawn interval
  N/M        - Faster/slower falling blocks
  +/-, [/]   - Zoom and pan the view
  P/Esc      - Pause
  R          - Restart
  Q/Ctrl+C   - Quit

Mouse:
  Drag a bucket or the cannon to move it, drag elsewhere to aim,
  scroll to zoom.

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  deathray play
  deathray play --difficulty easy
  deathray play --seed 42
  deathray play --config ./my-deathray.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
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

// openStore opens the runs database. Play continues without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("Could not open runs database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func session() tui.Session {
	return tui.Session{
		Player:     flagPlayer,
		Difficulty: flagDifficulty,
		FixedSeed:  flagSeed != 0,
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := playOnce(store, terminalConfig()); err != nil {
		logger.Error("Error running game", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// playOnce runs a single game program and reports how it ended.
func playOnce(store *storage.Store, cfg core.RuntimeConfig) error {
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	result, err := tui.Run(game, store, nil, cfg, session())
	if err != nil {
		return err
	}

	if result.SaveErr != nil {
		logger.Warn("Could not save run", "error", result.SaveErr)
	}
	if result.Saved != nil {
		logger.Info("Run saved", "score", result.Saved.Score, "run", result.Saved.RunID)
	}
	return nil
}
