package engine

import (
	"math/rand"
	"slices"
	"testing"
)

func TestSlideLineMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		merges   int
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "double merge",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 4, 0, 0},
			score:    8,
			merges:   2,
		},
		{
			name:     "merged tile does not merge again",
			input:    []int{2, 2, 4, 0},
			expected: []int{4, 4, 0, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "two different pairs",
			input:    []int{4, 4, 8, 8},
			expected: []int{8, 16, 0, 0},
			score:    24,
			merges:   2,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "slide with multiple gaps",
			input:    []int{2, 0, 0, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "no change needed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
		},
		{
			name:     "three tiles on a short line",
			input:    []int{2, 2, 2},
			expected: []int{4, 2, 0},
			score:    4,
			merges:   1,
		},
		{
			name:     "wide line",
			input:    []int{2, 0, 2, 4, 0, 4, 8, 0},
			expected: []int{4, 8, 8, 0, 0, 0, 0, 0},
			score:    12,
			merges:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score, merges := slideLine(tt.input)
			if !slices.Equal(result, tt.expected) {
				t.Errorf("slideLine(%v) = %v, want %v", tt.input, result, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slideLine(%v) score = %d, want %d", tt.input, score, tt.score)
			}
			if merges != tt.merges {
				t.Errorf("slideLine(%v) merges = %d, want %d", tt.input, merges, tt.merges)
			}
		})
	}
}

func TestSlideLineDoesNotModifyInput(t *testing.T) {
	input := []int{2, 2, 0, 4}
	slideLine(input)

	if !slices.Equal(input, []int{2, 2, 0, 4}) {
		t.Errorf("slideLine modified its input: %v", input)
	}
}

func TestLineCells(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected []cell
	}{
		{DirLeft, []cell{{1, 0}, {1, 1}, {1, 2}}},
		{DirRight, []cell{{1, 2}, {1, 1}, {1, 0}}},
		{DirUp, []cell{{0, 1}, {1, 1}, {2, 1}}},
		{DirDown, []cell{{2, 1}, {1, 1}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			got := lineCells(tt.dir, 3, 1)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("lineCells(%s, 3, 1) = %v, want %v", tt.dir, got, tt.expected)
			}
		})
	}
}

func TestSlideLeft(t *testing.T) {
	board := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}

	result, score, merges, changed := Slide(board, DirLeft)

	if !result.Equal(expected) {
		t.Errorf("Slide left: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide left should indicate board changed")
	}

	if expectedScore := 4 + 8 + 8; score != expectedScore {
		t.Errorf("Slide left score = %d, want %d", score, expectedScore)
	}

	if merges != 4 {
		t.Errorf("Slide left merges = %d, want 4", merges)
	}
}

func TestSlideRight(t *testing.T) {
	board := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	expected := Grid{
		{0, 0, 0, 4},
		{0, 0, 0, 8},
		{0, 0, 4, 4},
		{0, 0, 0, 2},
	}

	result, _, _, changed := Slide(board, DirRight)

	if !result.Equal(expected) {
		t.Errorf("Slide right: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide right should indicate board changed")
	}
}

func TestSlideUp(t *testing.T) {
	board := Grid{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	expected := Grid{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	result, _, _, changed := Slide(board, DirUp)

	if !result.Equal(expected) {
		t.Errorf("Slide up: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide up should indicate board changed")
	}
}

func TestSlideDown(t *testing.T) {
	board := Grid{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	}

	expected := Grid{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}

	result, _, _, changed := Slide(board, DirDown)

	if !result.Equal(expected) {
		t.Errorf("Slide down: got\n%v\nwant\n%v", result, expected)
	}

	if !changed {
		t.Error("Slide down should indicate board changed")
	}
}

func TestSlideMergesFromLeadingEdge(t *testing.T) {
	// Three equal tiles: the pair nearest the leading edge merges
	board := Grid{
		{2, 2, 2},
		{0, 0, 0},
		{0, 0, 0},
	}

	left, _, _, _ := Slide(board, DirLeft)
	if !slices.Equal(left[0], []int{4, 2, 0}) {
		t.Errorf("Slide left row = %v, want [4 2 0]", left[0])
	}

	right, _, _, _ := Slide(board, DirRight)
	if !slices.Equal(right[0], []int{0, 2, 4}) {
		t.Errorf("Slide right row = %v, want [0 2 4]", right[0])
	}
}

func TestSlideDoesNotModifyInput(t *testing.T) {
	board := Grid{
		{2, 2},
		{0, 4},
	}
	original := board.Clone()

	Slide(board, DirLeft)

	if !board.Equal(original) {
		t.Errorf("Slide modified its input: %v", board)
	}
}

func TestSlideUnknownDirection(t *testing.T) {
	board := Grid{
		{2, 2},
		{0, 4},
	}

	result, score, _, changed := Slide(board, Direction(42))
	if changed || score != 0 || !result.Equal(board) {
		t.Errorf("Slide with unknown direction changed the board: %v", result)
	}
}

// randomGrid fills a size x size grid with small powers of two and some gaps.
func randomGrid(rng *rand.Rand, size int) Grid {
	values := []int{0, 0, 2, 2, 4, 8, 16}
	g := NewGrid(size)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			g[r][c] = values[rng.Intn(len(values))]
		}
	}
	return g
}

func TestSlideConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		board := randomGrid(rng, 2+rng.Intn(5))
		for _, dir := range Directions {
			result, score, merges, changed := Slide(board, dir)

			// A merge replaces v+v with 2v, so the sum never changes
			if result.Sum() != board.Sum() {
				t.Fatalf("Slide(%v, %s) sum = %d, want %d", board, dir, result.Sum(), board.Sum())
			}
			if board.TileCount()-merges != result.TileCount() {
				t.Fatalf("Slide(%v, %s) tiles = %d, want %d", board, dir, result.TileCount(), board.TileCount()-merges)
			}
			if merges > 0 && score == 0 {
				t.Fatalf("Slide(%v, %s) merged %d times without scoring", board, dir, merges)
			}
			if changed == result.Equal(board) {
				t.Fatalf("Slide(%v, %s) changed = %v, but boards equal = %v", board, dir, changed, result.Equal(board))
			}
		}
	}
}

func TestSlideMergeOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		size := 2 + rng.Intn(5)
		board := randomGrid(rng, size)
		for _, dir := range Directions {
			result, _, _, _ := Slide(board, dir)
			for i := 0; i < size; i++ {
				cells := lineCells(dir, size, i)
				before := slices.Max(readLine(board, cells))
				after := slices.Max(readLine(result, cells))
				if after > 2*before {
					t.Fatalf("Slide(%v, %s) line %d grew from max %d to %d", board, dir, i, before, after)
				}
			}
		}
	}
}
