package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

type fakeSource struct {
	results map[int][]storage.ResultEntry
	err     error
}

func (f fakeSource) BoardSizes() ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	var sizes []int
	for size := 0; size < 10; size++ {
		if len(f.results[size]) > 0 {
			sizes = append(sizes, size)
		}
	}
	return sizes, nil
}

func (f fakeSource) TopResults(boardSize, limit int) ([]storage.ResultEntry, error) {
	results := f.results[boardSize]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (f fakeSource) Stats(boardSize int) (*storage.GameStats, error) {
	stats := &storage.GameStats{BoardSize: boardSize, GamesCount: len(f.results[boardSize])}
	for _, r := range f.results[boardSize] {
		if r.Won {
			stats.Wins++
		}
	}
	return stats, nil
}

func newFakeSource() fakeSource {
	played := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	return fakeSource{results: map[int][]storage.ResultEntry{
		3: {
			{SessionID: "c", BoardSize: 3, Score: 900, MaxTile: 128, Moves: 80, CreatedAt: played},
		},
		4: {
			{SessionID: "a", BoardSize: 4, Score: 21000, MaxTile: 2048, Moves: 1000, Won: true, CreatedAt: played},
			{SessionID: "b", BoardSize: 4, Score: 3000, MaxTile: 256, Moves: 300, CreatedAt: played},
		},
	}}
}

func TestScoreboardStartsAtPreferredSize(t *testing.T) {
	m := NewScoreboardModel(newFakeSource(), 4, 10, 80, 24)

	assert.Equal(t, 4, m.currentSize())
	require.Len(t, m.results, 2)
	assert.Equal(t, 2, m.stats.GamesCount)
	assert.Equal(t, 1, m.stats.Wins)

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "#1", rows[0][0])
	assert.Equal(t, "21000", rows[0][1])
	assert.Equal(t, "yes", rows[0][4])
	assert.Equal(t, "", rows[1][4])
	assert.Equal(t, "Mar 14 09:30", rows[0][5])

	view := m.View()
	assert.Contains(t, view, "HIGH SCORES - 4x4")
	assert.Contains(t, view, "3x3")
}

func TestScoreboardSwitchesSizes(t *testing.T) {
	m := NewScoreboardModel(newFakeSource(), 4, 10, 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, 3, m.currentSize(), "wraps around to the first size")
	assert.Len(t, m.results, 1)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ScoreboardModel)
	assert.Equal(t, 4, m.currentSize())
}

func TestScoreboardLimit(t *testing.T) {
	m := NewScoreboardModel(newFakeSource(), 4, 1, 80, 24)
	assert.Len(t, m.results, 1)
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(fakeSource{}, 4, 10, 80, 24)

	assert.Equal(t, 0, m.currentSize())
	assert.Contains(t, m.View(), "No scores recorded yet")

	// Size keys are harmless without data
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, next.(ScoreboardModel).currentSize())
}

func TestScoreboardError(t *testing.T) {
	m := NewScoreboardModel(fakeSource{err: errors.New("disk on fire")}, 4, 10, 80, 24)
	assert.Contains(t, m.View(), "disk on fire")
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(newFakeSource(), 4, 10, 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
