// Package session drives one player's games on top of the engine: it spawns
// tiles after changing moves, reports the score to a best-score store and
// records each game once it is over.
package session

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

// BestScoreStore persists the best score across games.
type BestScoreStore interface {
	Load() (int, error)
	Save(score int) error
}

// ResultRecorder stores finished games.
type ResultRecorder interface {
	SaveResult(r Result) error
}

// Result describes a finished (or abandoned) game.
type Result struct {
	SessionID string
	BoardSize int
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
}

// Options configures a Session. All fields are optional.
type Options struct {
	Best     BestScoreStore
	Recorder ResultRecorder
	Logger   *log.Logger
}

// Session wraps an engine for a single player.
// Like the engine it is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	engine   *engine.Engine
	best     BestScoreStore
	recorder ResultRecorder
	logger   *log.Logger

	bestScore int
	recorded  bool // Result for the current game already saved
}

// New creates a session around eng, which must already be reset.
func New(eng *engine.Engine, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		id:       uuid.New(),
		engine:   eng,
		best:     opts.Best,
		recorder: opts.Recorder,
		logger:   logger,
	}

	if s.best != nil {
		best, err := s.best.Load()
		if err != nil {
			s.logger.Warn("could not load best score", "error", err)
		}
		s.bestScore = best
	}

	s.logger.Info("game started", "session", s.id, "size", eng.Size())
	return s
}

// Move applies a move and, if the board changed, spawns a tile.
// The spawned tile is reported in MoveResult.Spawned.
func (s *Session) Move(dir engine.Direction) engine.MoveResult {
	wasWon := s.engine.IsWin()

	res := s.engine.ApplyMove(dir)
	if res.Changed {
		if tile, ok := s.engine.SpawnTile(); ok {
			res.Spawned = &tile
		}
	}

	s.logger.Debug("move",
		"session", s.id,
		"dir", dir,
		"changed", res.Changed,
		"delta", res.ScoreDelta,
		"score", s.engine.Score(),
	)

	if res.ScoreDelta > 0 {
		s.reportScore()
	}

	if !wasWon && s.engine.IsWin() {
		s.logger.Info("winning tile reached", "session", s.id, "score", s.engine.Score())
	}

	if s.engine.IsGameOver() {
		s.finish()
	}

	return res
}

// reportScore pushes a new best score to the store.
func (s *Session) reportScore() {
	score := s.engine.Score()
	if score <= s.bestScore {
		return
	}
	s.bestScore = score

	if s.best == nil {
		return
	}
	if err := s.best.Save(score); err != nil {
		s.logger.Warn("could not save best score", "error", err)
	}
}

// finish records the current game once.
func (s *Session) finish() {
	if s.recorded {
		return
	}
	s.recorded = true

	result := s.Result()
	s.logger.Info("game over",
		"session", s.id,
		"score", result.Score,
		"max_tile", result.MaxTile,
		"moves", result.Moves,
		"won", result.Won,
	)

	if s.recorder == nil {
		return
	}
	if err := s.recorder.SaveResult(result); err != nil {
		s.logger.Warn("could not save result", "error", err)
	}
}

// Restart records an unfinished game that scored, then starts a new one
// on a board of the same size.
func (s *Session) Restart() error {
	s.Close()

	if err := s.engine.Reset(s.engine.Size()); err != nil {
		return err
	}

	s.id = uuid.New()
	s.recorded = false
	s.logger.Info("game started", "session", s.id, "size", s.engine.Size())
	return nil
}

// Close records the current game if it scored and was not recorded yet.
func (s *Session) Close() {
	if s.engine.Score() > 0 {
		s.finish()
	}
}

// Result returns the current game as a Result.
func (s *Session) Result() Result {
	return Result{
		SessionID: s.id.String(),
		BoardSize: s.engine.Size(),
		Score:     s.engine.Score(),
		MaxTile:   s.engine.MaxTile(),
		Moves:     s.engine.Moves(),
		Won:       s.engine.IsWin(),
	}
}

// ID returns the identifier of the current game.
func (s *Session) ID() string {
	return s.id.String()
}

// Best returns the best score known to this session.
func (s *Session) Best() int {
	return s.bestScore
}

// Engine returns the underlying engine for read-only queries.
func (s *Session) Engine() *engine.Engine {
	return s.engine
}

// Snapshot returns the engine snapshot.
func (s *Session) Snapshot() engine.Snapshot {
	return s.engine.Snapshot()
}
