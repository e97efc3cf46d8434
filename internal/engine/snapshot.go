package engine

// Status represents the current game status.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Snapshot captures the complete game state for display, replay checks and export.
type Snapshot struct {
	Size    int    `yaml:"size"`
	Score   int    `yaml:"score"`
	Moves   int    `yaml:"moves"`
	MaxTile int    `yaml:"max_tile"`
	Status  Status `yaml:"status"`
	Over    bool   `yaml:"over"`
	Grid    Grid   `yaml:"grid,flow"`
}

// Snapshot returns a read-only copy of the game state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:    e.size,
		Score:   e.score,
		Moves:   e.moves,
		MaxTile: e.grid.MaxTile(),
		Status:  e.status,
		Over:    e.IsGameOver(),
		Grid:    e.grid.Clone(),
	}
}
