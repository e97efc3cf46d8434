package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded games",
	Long: `Display the best recorded games, one board size at a time.

On a terminal this opens an interactive table (left/right switches
board size). When output is piped, or with --plain, the top games for
--size are printed as text.

Examples:
  t2048 scores
  t2048 scores --size 5 --limit 20
  t2048 scores --plain`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresPlain, "plain", false, "Print plain text even on a terminal")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)

	// Open score storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagScoresPlain && term.IsTerminal(fd) {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, cfg.Board.Size, flagScoresLimit, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printScores(os.Stdout, store, cfg.Board.Size, flagScoresLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printScores writes the top results for one board size as text.
func printScores(w io.Writer, store *storage.Store, size, limit int) error {
	results, err := store.TopResults(size, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", boardSizeLabel(size))
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 't2048 play --size %d' to set the first high score!\n", size)
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %-3s  %s\n", "Rank", "Score", "Max", "Moves", "Won", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-6s  %-6s  %-3s  %s\n", "----", "-----", "---", "-----", "---", "----")

	for i, r := range results {
		won := ""
		if r.Won {
			won = "yes"
		}
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-10d  %-6d  %-6d  %-3s  %s\n", i+1, r.Score, r.MaxTile, r.Moves, won, dateStr)
	}

	// Show best score
	fmt.Fprintln(w)
	best, err := store.BestScore(size)
	if err == nil {
		fmt.Fprintf(w, "Best: %d\n", best)
	}
	return nil
}
