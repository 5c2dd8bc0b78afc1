package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deathray/internal/platform/tui"
)

// runMenu loops between the main menu, runs and the scoreboard until the
// player quits.
func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			logger.Error("Menu failed", "error", err)
			return
		}
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.MenuChoicePlay:
			if err := playOnce(store, cfg); err != nil {
				logger.Error("Error running game", "error", err)
				return
			}

		case tui.MenuChoiceScores:
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, flagPlayer)
			if err != nil {
				logger.Error("Scoreboard failed", "error", err)
				return
			}
			if !goBack {
				return
			}

		default:
			return
		}
	}
}
