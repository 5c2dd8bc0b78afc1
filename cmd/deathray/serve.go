package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deathray/internal/games/deathray"
	"github.com/vovakirdan/deathray/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Death Ray SSH server",
	Long: `Start an SSH server that lets players connect and play.

Each SSH connection gets its own session with the main menu.
Runs are stored per-server under the SSH user name, so all players
share the same leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.deathray/host_key

Examples:
  deathray serve                           # Listen on :23234 with auto-generated key
  deathray serve --ssh :2222               # Listen on port 2222
  deathray serve --host-key ./my_host_key  # Use specific host key
  deathray serve --db ./runs.db            # Use specific database

Players can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.GameID = gameID
	cfg.Difficulty = flagDifficulty
	cfg.TickRate = flagFPS
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	// Sessions reload the config on every run; surface fallbacks in the server log.
	deathray.SetLogger(logger)

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		logger.Error("Error creating server", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Death Ray SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
