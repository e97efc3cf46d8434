// Package engine implements the grid transition rules of the 2048 sliding-tile
// puzzle: moves, merges, tile spawning and win/loss detection.
// It has no I/O and no hidden randomness; callers inject the random source.
package engine

import (
	"errors"
	"fmt"
)

// Spawn and win constants.
const (
	SpawnValueLow        = 2
	SpawnValueHigh       = 4
	SpawnHighProbability = 0.1
	WinningValue         = 2048
)

// ErrInvalidConfiguration is returned when a board cannot be set up,
// e.g. a size below MinSize.
var ErrInvalidConfiguration = errors.New("engine: invalid configuration")

// Rand is the random source used when spawning tiles.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// MoveResult describes the outcome of a single ApplyMove call.
type MoveResult struct {
	Changed    bool  // Whether any tile slid or merged
	ScoreDelta int   // Sum of the values of tiles created by merges
	Merges     int   // Number of merges performed
	Spawned    *Tile // Tile spawned after the move; ApplyMove itself never sets it
}

// Engine owns one game: grid, score and status.
// It is not safe for concurrent use.
type Engine struct {
	rng Rand

	size    int
	grid    Grid
	score   int
	moves   int
	status  Status
	blocked bool // No empty cell and no adjacent pair
}

// New creates an engine with a freshly reset board of the given size.
func New(size int, rng Rand) (*Engine, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfiguration)
	}

	e := &Engine{rng: rng}
	if err := e.Reset(size); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a new game on an empty size x size board with two spawned tiles.
// The current game is left untouched if size is invalid.
func (e *Engine) Reset(size int) error {
	if size < MinSize {
		return fmt.Errorf("%w: board size %d is below %d", ErrInvalidConfiguration, size, MinSize)
	}

	e.size = size
	e.grid = NewGrid(size)
	e.score = 0
	e.moves = 0
	e.status = StatusInProgress
	e.blocked = false

	e.SpawnTile()
	e.SpawnTile()
	return nil
}

// Load replaces the board with a copy of grid and sets the score.
// The grid must be square, at least MinSize wide, and hold only zeros and
// powers of two. Status is recomputed from the new board.
func (e *Engine) Load(grid Grid, score int) error {
	size := grid.Size()
	if size < MinSize {
		return fmt.Errorf("%w: board size %d is below %d", ErrInvalidConfiguration, size, MinSize)
	}
	if score < 0 {
		return fmt.Errorf("%w: negative score %d", ErrInvalidConfiguration, score)
	}
	for r, row := range grid {
		if len(row) != size {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidConfiguration, r, len(row), size)
		}
		for c, v := range row {
			if v != 0 && !isPowerOfTwo(v) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d, not a power of two", ErrInvalidConfiguration, r, c, v)
			}
		}
	}

	e.size = size
	e.grid = grid.Clone()
	e.score = score
	e.moves = 0
	e.status = StatusInProgress
	e.updateStatus()
	return nil
}

// SpawnTile places a 2 (or, with probability SpawnHighProbability, a 4) in an
// empty cell chosen uniformly at random.
// Returns false when the board has no empty cell.
func (e *Engine) SpawnTile() (Tile, bool) {
	emptyCells := e.grid.EmptyCells()
	if len(emptyCells) == 0 {
		return Tile{}, false
	}

	tile := emptyCells[e.rng.Intn(len(emptyCells))]

	tile.Value = SpawnValueLow
	if e.rng.Float64() < SpawnHighProbability {
		tile.Value = SpawnValueHigh
	}

	e.grid[tile.Row][tile.Col] = tile.Value

	// A spawn into the last empty cell can end the game
	e.updateStatus()

	return tile, true
}

// ApplyMove slides and merges every line toward dir.
// It never spawns; callers spawn with SpawnTile when Changed is true.
// A lost game or an unknown direction is a no-op.
func (e *Engine) ApplyMove(dir Direction) MoveResult {
	if e.status == StatusLost || !dir.Valid() {
		return MoveResult{}
	}

	score, merges, changed := slideInPlace(e.grid, dir)
	e.score += score
	if changed {
		e.moves++
	}

	e.updateStatus()

	return MoveResult{
		Changed:    changed,
		ScoreDelta: score,
		Merges:     merges,
	}
}

// updateStatus applies the InProgress -> Won / Lost transitions.
// Won and Lost are only entered from InProgress.
func (e *Engine) updateStatus() {
	e.blocked = !e.grid.CanMove()

	if e.status != StatusInProgress {
		return
	}

	switch {
	case e.grid.MaxTile() >= WinningValue:
		e.status = StatusWon
	case e.blocked:
		e.status = StatusLost
	}
}

// Status returns the current game status.
func (e *Engine) Status() Status {
	return e.status
}

// IsWin returns true once the winning tile has been reached.
func (e *Engine) IsWin() bool {
	return e.status == StatusWon
}

// IsGameOver returns true when no move can change the board: the game is
// lost, or it was won and the board has since filled up without merges.
func (e *Engine) IsGameOver() bool {
	return e.status == StatusLost || (e.status == StatusWon && e.blocked)
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Size returns the board dimension.
func (e *Engine) Size() int {
	return e.size
}

// Moves returns the number of moves that changed the board.
func (e *Engine) Moves() int {
	return e.moves
}

// CellAt returns the value at (row, col), or 0 outside the board.
func (e *Engine) CellAt(row, col int) int {
	if row < 0 || row >= e.size || col < 0 || col >= e.size {
		return 0
	}
	return e.grid[row][col]
}

// Grid returns a copy of the board.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// MaxTile returns the highest tile on the board.
func (e *Engine) MaxTile() int {
	return e.grid.MaxTile()
}

// CanMove returns true if some direction would change the board.
func (e *Engine) CanMove() bool {
	return !e.blocked
}
