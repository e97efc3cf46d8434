package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in the terminal",
	Long: `Start a game of 2048.

Controls:
  Arrows/WASD  - Slide tiles
  Enter        - Keep playing after reaching 2048
  N/R          - New game
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Logs go to ~/.t2048/t2048.log while the game is on screen.

Examples:
  t2048 play
  t2048 play --size 3
  t2048 play --seed 42
  t2048 play --config ./my-t2048.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)

	// The TUI owns the terminal, so log to a file
	logPath := config.DataPath("t2048.log")
	logFile, err := openLogFile(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	store := openStore(cfg, logger)
	if store == nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database, see %s\n", logPath)
	}

	sess, err := tui.NewSession(store, cfg.Board.Size, resolveSeed(cfg), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(sess)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}
