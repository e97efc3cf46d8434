// Package tui provides the Bubble Tea front end for t2048.
// It handles the terminal UI loop, key bindings, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// highlightDuration is how long a freshly spawned tile stays highlighted.
const highlightDuration = 600 * time.Millisecond

// clearHighlightMsg ends the highlight started by move number seq.
type clearHighlightMsg struct {
	seq int
}

// clearHighlightCmd returns a command that clears the highlight after highlightDuration.
func clearHighlightCmd(seq int) tea.Cmd {
	return tea.Tick(highlightDuration, func(time.Time) tea.Msg {
		return clearHighlightMsg{seq: seq}
	})
}
