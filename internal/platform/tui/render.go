package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

const (
	cellWidth  = 7 // Width of each tile in columns
	cellHeight = 3 // Height of each tile in rows
)

// tileColors maps tile values to foreground/background colors.
var tileColors = map[int][2]lipgloss.Color{
	0:    {"240", "236"},
	2:    {"236", "230"},
	4:    {"236", "223"},
	8:    {"231", "215"},
	16:   {"231", "209"},
	32:   {"231", "203"},
	64:   {"231", "196"},
	128:  {"236", "229"},
	256:  {"236", "228"},
	512:  {"236", "227"},
	1024: {"236", "226"},
	2048: {"236", "220"},
}

// superTileColors is used for values above the winning value.
var superTileColors = [2]lipgloss.Color{"231", "93"}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	deltaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 3).
			Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// tileStyle returns the style for a tile value.
func tileStyle(value int, highlight bool) lipgloss.Style {
	colors, ok := tileColors[value]
	if !ok {
		colors = superTileColors
	}

	style := lipgloss.NewStyle().
		Width(cellWidth).
		Height(cellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(colors[0]).
		Background(colors[1])

	if highlight {
		style = style.Bold(true).Underline(true)
	}
	return style
}

// tileLabel formats a tile value to fit in a cell.
func tileLabel(value int) string {
	if value == 0 {
		return "·"
	}
	label := strconv.Itoa(value)
	if len(label) > cellWidth {
		// 2^24 and up: show the exponent
		return fmt.Sprintf("2^%d", exponent(value))
	}
	return label
}

// exponent returns log2 of a power of two.
func exponent(value int) int {
	n := 0
	for value > 1 {
		value >>= 1
		n++
	}
	return n
}

// renderBoard draws the grid with tiles. highlight marks the last spawned tile.
func renderBoard(grid engine.Grid, highlight *engine.Tile) string {
	rows := make([]string, 0, len(grid)*2)
	for r, row := range grid {
		if r > 0 {
			rows = append(rows, "")
		}
		cells := make([]string, 0, len(row)*2)
		for c, v := range row {
			if c > 0 {
				cells = append(cells, " ")
			}
			hl := highlight != nil && highlight.Row == r && highlight.Col == c
			cells = append(cells, tileStyle(v, hl).Render(tileLabel(v)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderHeader draws the title, score, best score and last score delta.
func renderHeader(score, best, delta, maxTile int) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Score "))
	b.WriteString(valueStyle.Render(strconv.Itoa(score)))
	if delta > 0 {
		b.WriteString(deltaStyle.Render(fmt.Sprintf(" +%d", delta)))
	}
	b.WriteString(labelStyle.Render("   Best "))
	b.WriteString(valueStyle.Render(strconv.Itoa(best)))
	b.WriteString(labelStyle.Render("   Max "))
	b.WriteString(valueStyle.Render(strconv.Itoa(maxTile)))

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(strconv.Itoa(engine.WinningValue)),
		b.String(),
	)
}

// renderOverlay draws a centered box over an area of the given size.
func renderOverlay(width, height int, lines ...string) string {
	box := overlayStyle.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
