package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagSimMoves  int
	flagSimBoard  string
	flagSimRecord bool
	flagSimScript []string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play random moves headless and print the final board",
	Long: `Play a game with uniformly random moves until it is over or the
move budget runs out, then print the final board as YAML.

The same seed always produces the same game. --script replaces the
random moves with a fixed sequence (up/u, down/d, left/l, right/r).
A board file starts the game from a given position instead of two
random tiles:

  grid:
    - [2, 0, 2, 2]
    - [0, 4, 0, 0]
    - [0, 0, 0, 0]
    - [0, 0, 0, 8]
  score: 0

Examples:
  t2048 sim --seed 42
  t2048 sim --seed 7 --size 3 --moves 200
  t2048 sim --board ./board.yaml --moves 1
  t2048 sim --board ./board.yaml --script right,up
  t2048 sim --record`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 10000, "Maximum number of move attempts")
	simCmd.Flags().StringVar(&flagSimBoard, "board", "", "Path to a YAML board to start from")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the result to the scores database")
	simCmd.Flags().StringSliceVar(&flagSimScript, "script", nil, "Comma-separated moves to play instead of random ones")
}

// boardFile is the YAML layout accepted by --board.
type boardFile struct {
	Grid  engine.Grid `yaml:"grid"`
	Score int         `yaml:"score"`
}

// simResult is the YAML document printed by sim.
type simResult struct {
	Seed            int64 `yaml:"seed"`
	Attempts        int   `yaml:"attempts"`
	engine.Snapshot `yaml:",inline"`
}

// simulation plays moves on a session.
type simulation struct {
	session *session.Session
	rng     *rand.Rand
}

// run attempts up to maxMoves random moves and returns the number attempted.
func (s simulation) run(maxMoves int) int {
	attempts := 0
	for i := 0; i < maxMoves; i++ {
		if s.session.Engine().IsGameOver() {
			break
		}
		dir := engine.Directions[s.rng.Intn(len(engine.Directions))]
		s.session.Move(dir)
		attempts++
	}
	return attempts
}

// runScript plays moves in order until the game is over and returns the
// number attempted.
func (s simulation) runScript(moves []engine.Direction) int {
	attempts := 0
	for _, dir := range moves {
		if s.session.Engine().IsGameOver() {
			break
		}
		s.session.Move(dir)
		attempts++
	}
	return attempts
}

// parseScript converts move names to directions.
func parseScript(names []string) ([]engine.Direction, error) {
	dirs := make([]engine.Direction, 0, len(names))
	for _, name := range names {
		dir, ok := engine.ParseDirection(name)
		if !ok {
			return nil, fmt.Errorf("unknown move %q", name)
		}
		dirs = append(dirs, dir)
	}
	return dirs, nil
}

func runSim(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)
	logger := newLogger(os.Stderr, cfg)
	seed := resolveSeed(cfg)

	var board *boardFile
	if flagSimBoard != "" {
		b, err := readBoardFile(flagSimBoard)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		board = b
	}

	script, err := parseScript(flagSimScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimRecord {
		store = openStore(cfg, logger)
		if store != nil {
			defer store.Close()
		}
	}

	sim, err := newSimulation(cfg.Board.Size, seed, board, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var attempts int
	if len(script) > 0 {
		attempts = sim.runScript(script)
	} else {
		attempts = sim.run(flagSimMoves)
	}
	sim.session.Close()

	if err := writeSimResult(os.Stdout, simResult{
		Seed:     seed,
		Attempts: attempts,
		Snapshot: sim.session.Snapshot(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newSimulation builds a session seeded with seed. A board, if given,
// replaces the starting position and decides the size.
func newSimulation(size int, seed int64, board *boardFile, store *storage.Store, logger *log.Logger) (simulation, error) {
	rng := rand.New(rand.NewSource(seed))

	if board != nil {
		size = board.Grid.Size()
	}
	eng, err := engine.New(size, rng)
	if err != nil {
		return simulation{}, err
	}
	if board != nil {
		if err := eng.Load(board.Grid, board.Score); err != nil {
			return simulation{}, fmt.Errorf("board: %w", err)
		}
	}

	opts := session.Options{Logger: logger}
	if store != nil {
		opts.Best = storage.BestScores{Store: store, Size: size}
		opts.Recorder = store
	}

	return simulation{
		session: session.New(eng, opts),
		rng:     rng,
	}, nil
}

// readBoardFile parses a YAML board.
func readBoardFile(path string) (*boardFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board %s: %w", path, err)
	}
	var b boardFile
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse board %s: %w", path, err)
	}
	return &b, nil
}

// writeSimResult encodes r as YAML.
func writeSimResult(w io.Writer, r simResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return enc.Close()
}
