package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestSimulationIsDeterministic(t *testing.T) {
	play := func() (int, engine.Snapshot) {
		sim, err := newSimulation(4, 42, nil, nil, nil)
		require.NoError(t, err)
		attempts := sim.run(500)
		return attempts, sim.session.Snapshot()
	}

	attempts1, snap1 := play()
	attempts2, snap2 := play()

	assert.Equal(t, attempts1, attempts2)
	assert.Equal(t, snap1, snap2)
	assert.True(t, snap1.Over || attempts1 == 500)
	assert.Positive(t, snap1.Moves)
}

func TestSimulationFromBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  - [2, 4]\n  - [4, 2]\nscore: 12\n"), 0o644))

	board, err := readBoardFile(path)
	require.NoError(t, err)

	// Size comes from the board, not the argument
	sim, err := newSimulation(6, 1, board, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, sim.run(100), "a lost board takes no moves")

	snap := sim.session.Snapshot()
	assert.Equal(t, 2, snap.Size)
	assert.Equal(t, 12, snap.Score)
	assert.Equal(t, engine.StatusLost, snap.Status)
	assert.Equal(t, engine.Grid{{2, 4}, {4, 2}}, snap.Grid)
}

func TestSimulationScript(t *testing.T) {
	dirs, err := parseScript([]string{"right", "u", "left"})
	require.NoError(t, err)
	assert.Equal(t, []engine.Direction{engine.DirRight, engine.DirUp, engine.DirLeft}, dirs)

	_, err = parseScript([]string{"right", "sideways"})
	assert.Error(t, err)

	sim, err := newSimulation(4, 3, &boardFile{Grid: engine.Grid{
		{2, 0, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, sim.runScript(dirs[:1]))
	snap := sim.session.Snapshot()
	assert.Equal(t, 4, snap.Score)
	assert.Equal(t, 1, snap.Moves)
	assert.Equal(t, 3, snap.Grid.TileCount(), "two tiles after the merge plus one spawn")
}

func TestSimulationRejectsBadBoard(t *testing.T) {
	_, err := newSimulation(4, 1, &boardFile{Grid: engine.Grid{{2, 3}, {0, 0}}}, nil, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfiguration)

	_, err = newSimulation(4, 1, &boardFile{}, nil, nil)
	assert.ErrorIs(t, err, engine.ErrInvalidConfiguration)

	_, err = readBoardFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSimulationRecordsResult(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "sim.db"))
	require.NoError(t, err)
	defer store.Close()

	sim, err := newSimulation(3, 9, nil, store, nil)
	require.NoError(t, err)
	sim.run(10000)
	sim.session.Close()

	results, err := store.TopResults(3, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sim.session.Snapshot().Score, results[0].Score)
}

func TestWriteSimResult(t *testing.T) {
	var buf bytes.Buffer
	err := writeSimResult(&buf, simResult{
		Seed:     42,
		Attempts: 3,
		Snapshot: engine.Snapshot{
			Size:    2,
			Score:   4,
			Moves:   2,
			MaxTile: 4,
			Status:  engine.StatusInProgress,
			Grid:    engine.Grid{{4, 2}, {0, 0}},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "seed: 42")
	assert.Contains(t, out, "status: in_progress")
	assert.Contains(t, out, "[4, 2]")

	var decoded struct {
		Seed  int64       `yaml:"seed"`
		Score int         `yaml:"score"`
		Grid  engine.Grid `yaml:"grid"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, int64(42), decoded.Seed)
	assert.Equal(t, 4, decoded.Score)
	assert.Equal(t, engine.Grid{{4, 2}, {0, 0}}, decoded.Grid)
}

func TestPrintScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	var empty bytes.Buffer
	require.NoError(t, printScores(&empty, store, 4, 10))
	assert.Contains(t, empty.String(), "No scores recorded yet.")

	_, err = store.AddResult(storage.ResultEntry{SessionID: "a", BoardSize: 4, Score: 512, MaxTile: 64, Moves: 90})
	require.NoError(t, err)
	require.NoError(t, store.SetBestScore(4, 512))

	var buf bytes.Buffer
	require.NoError(t, printScores(&buf, store, 4, 10))
	assert.Contains(t, buf.String(), "High Scores - 4x4")
	assert.Contains(t, buf.String(), "512")
	assert.Contains(t, buf.String(), "Best: 512")
}
