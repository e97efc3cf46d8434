package engine

// cell is a (row, col) coordinate on the grid.
type cell struct {
	row, col int
}

// lineCells returns the coordinates of line i for a move in dir, ordered
// from the leading edge (the side tiles slide toward) to the trailing edge.
// Rows are lines for Left/Right, columns for Up/Down.
func lineCells(dir Direction, size, i int) []cell {
	cells := make([]cell, size)
	for k := 0; k < size; k++ {
		switch dir {
		case DirLeft:
			cells[k] = cell{i, k}
		case DirRight:
			cells[k] = cell{i, size - 1 - k}
		case DirUp:
			cells[k] = cell{k, i}
		case DirDown:
			cells[k] = cell{size - 1 - k, i}
		}
	}
	return cells
}

// slideLine compacts and merges one line toward index 0.
// Merging is greedy from the leading edge and each tile merges at most once,
// so [2,2,2] becomes [4,2,0], never [2,4,0] or [8,0,0].
// Returns the new line, the score gained and the number of merges.
func slideLine(line []int) (result []int, score, merges int) {
	result = make([]int, len(line))

	dense := make([]int, 0, len(line))
	for _, v := range line {
		if v != 0 {
			dense = append(dense, v)
		}
	}

	writePos := 0
	for i := 0; i < len(dense); i++ {
		if i+1 < len(dense) && dense[i] == dense[i+1] {
			merged := dense[i] * 2
			result[writePos] = merged
			score += merged
			merges++
			i++ // the partner is consumed
		} else {
			result[writePos] = dense[i]
		}
		writePos++
	}

	return result, score, merges
}

// readLine copies the values at cells out of the grid.
func readLine(g Grid, cells []cell) []int {
	line := make([]int, len(cells))
	for k, c := range cells {
		line[k] = g[c.row][c.col]
	}
	return line
}

// writeLine stores line back into the grid through cells.
func writeLine(g Grid, cells []cell, line []int) {
	for k, c := range cells {
		g[c.row][c.col] = line[k]
	}
}

// equalLine compares two lines element by element.
func equalLine(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Slide performs a move on a copy of g in the given direction.
// Returns the new grid, score gained, merges performed and whether the grid changed.
// g is not modified.
func Slide(g Grid, dir Direction) (Grid, int, int, bool) {
	out := g.Clone()
	if !dir.Valid() {
		return out, 0, 0, false
	}
	score, merges, changed := slideInPlace(out, dir)
	return out, score, merges, changed
}

// slideInPlace runs the compaction-and-merge pass over every line of g.
func slideInPlace(g Grid, dir Direction) (score, merges int, changed bool) {
	size := g.Size()
	for i := 0; i < size; i++ {
		cells := lineCells(dir, size, i)
		before := readLine(g, cells)
		after, s, m := slideLine(before)
		score += s
		merges += m

		if !equalLine(before, after) {
			changed = true
			writeLine(g, cells, after)
		}
	}
	return score, merges, changed
}
