package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Model is the Bubble Tea model for one game session.
type Model struct {
	session *session.Session
	keys    KeyMap
	help    help.Model
	width   int
	height  int

	lastDelta    int
	highlight    *engine.Tile // Last spawned tile
	highlightSeq int          // Move counter used to drop stale clear messages
	wonDismissed bool         // "You win" overlay was acknowledged
	quitting     bool
}

// NewModel creates a model driving sess.
func NewModel(sess *session.Session) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		session: sess,
		keys:    DefaultKeyMap(),
		help:    h,
	}
}

// NewSession builds a session on a fresh board of the given size.
// A nil store disables persistence.
func NewSession(store *storage.Store, size int, seed int64, logger *log.Logger) (*session.Session, error) {
	eng, err := engine.New(size, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	opts := session.Options{Logger: logger}
	if store != nil {
		opts.Best = storage.BestScores{Store: store, Size: size}
		opts.Recorder = store
	}
	return session.New(eng, opts), nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearHighlightMsg:
		if msg.seq == m.highlightSeq {
			m.highlight = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.session.Close()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		if err := m.session.Restart(); err != nil {
			// Size was valid when the session was built
			m.quitting = true
			return m, tea.Quit
		}
		m.lastDelta = 0
		m.highlight = nil
		m.wonDismissed = false
		return m, nil
	}

	if m.showWon() {
		// Any continue or move key dismisses the overlay without moving
		if key.Matches(msg, m.keys.Continue) {
			m.wonDismissed = true
		} else if _, ok := m.keys.Direction(msg); ok {
			m.wonDismissed = true
		}
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok {
		return m, nil
	}

	res := m.session.Move(dir)
	if !res.Changed {
		return m, nil
	}

	m.lastDelta = res.ScoreDelta
	m.highlight = res.Spawned
	m.highlightSeq++
	return m, clearHighlightCmd(m.highlightSeq)
}

// showWon reports whether the win overlay should be visible.
func (m Model) showWon() bool {
	eng := m.session.Engine()
	return eng.IsWin() && !eng.IsGameOver() && !m.wonDismissed
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	eng := m.session.Engine()
	board := renderBoard(eng.Grid(), m.highlight)
	boardW, boardH := lipgloss.Size(board)

	switch {
	case eng.IsGameOver():
		title := "GAME OVER"
		if eng.IsWin() {
			title = "YOU WIN! No moves left"
		}
		board = renderOverlay(boardW, boardH,
			title,
			fmt.Sprintf("Score: %d", eng.Score()),
			fmt.Sprintf("Max tile: %d", eng.MaxTile()),
			"",
			"n: new game  q: quit",
		)
	case m.showWon():
		board = renderOverlay(boardW, boardH,
			"YOU WIN!",
			fmt.Sprintf("You reached %d", engine.WinningValue),
			"",
			"enter: keep playing",
			"n: new game  q: quit",
		)
	}

	var b strings.Builder
	b.WriteString(renderHeader(eng.Score(), m.session.Best(), m.lastDelta, eng.MaxTile()))
	b.WriteString("\n\n")
	b.WriteString(board)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(b.String())
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for sess.
func Run(sess *session.Session) error {
	p := tea.NewProgram(
		NewModel(sess),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
