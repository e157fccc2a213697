// Package tui is the terminal front end: a bubbletea model that draws the
// board and reads moves typed as "e2 e4".
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chessrules/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const helpText = `moves: "e2 e4" or "e2e4"   square: "g1" lists its destinations
undo (desfazer) takes back the last move, quit (sair) leaves`

const invalidInput = "invalid input, use e2 e4"

type Model struct {
	game    *model.Game
	input   string
	message string
	quit    bool
}

func New(game *model.Game) Model {
	if game == nil {
		game = model.NewGame()
	}
	return Model{
		game:    game,
		message: `type a move like "e2 e4", or "help"`,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quit = true
		return m, tea.Quit
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyBackspace:
		if n := len(m.input); n > 0 {
			m.input = m.input[:n-1]
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(key.Runes)
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	entry := strings.ToLower(strings.TrimSpace(m.input))
	m.input = ""

	switch entry {
	case "":
		return m, nil
	case "quit", "sair":
		m.quit = true
		return m, tea.Quit
	case "help":
		m.message = helpText
		return m, nil
	case "undo", "desfazer":
		if rec, ok := m.game.Undo(); ok {
			m.message = "took back " + rec.Notation()
		} else {
			m.message = "nothing to undo"
		}
		return m, nil
	}

	if sq, err := model.ParseSquare(entry); err == nil {
		m.message = m.describeReach(sq)
		return m, nil
	}

	from, to, err := model.ParseMove(entry)
	if err != nil {
		m.message = invalidInput
		return m, nil
	}
	rec, err := m.game.AttemptMove(from, to)
	if err != nil {
		m.message = "illegal move: " + reason(err)
		return m, nil
	}
	m.message = "played " + rec.Notation()
	return m, nil
}

func (m Model) describeReach(sq model.Square) string {
	piece := m.game.Board().PieceAt(sq)
	if piece.IsZero() {
		return fmt.Sprintf("no piece on %s", sq)
	}
	reach := m.game.Reachable(sq)
	if len(reach) == 0 {
		return fmt.Sprintf("%s on %s has no moves", piece.Symbol(), sq)
	}
	names := make([]string, len(reach))
	for i, s := range reach {
		names[i] = s.String()
	}
	return fmt.Sprintf("%s on %s: %s", piece.Symbol(), sq, strings.Join(names, " "))
}

func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrNoPieceAtOrigin):
		return "no piece on that square"
	case errors.Is(err, model.ErrNotYourTurn):
		return "not your turn"
	case errors.Is(err, model.ErrDestinationOccupiedByOwnPiece):
		return "destination holds your own piece"
	case errors.Is(err, model.ErrIllegalPattern):
		return "that piece cannot move there"
	}
	return err.Error()
}

func (m Model) View() string {
	if m.quit {
		return "bye\n"
	}

	var s strings.Builder
	board := m.game.Board()
	for row := 7; row >= 0; row-- {
		fmt.Fprintf(&s, "%d ", row+1)
		for col := 0; col < 8; col++ {
			s.WriteString(board.PieceAt(model.Square{Row: row, Col: col}).Symbol())
			s.WriteByte(' ')
		}
		s.WriteByte('\n')
	}
	s.WriteString("  a b c d e f g h\n\n")

	fmt.Fprintf(&s, "%s to move", turnName(m.game.Turn()))
	if last, ok := m.game.LastMove(); ok {
		fmt.Fprintf(&s, "   last: %s", last.Notation())
	}
	s.WriteString("\n")
	if m.message != "" {
		s.WriteString(m.message)
		s.WriteString("\n")
	}
	fmt.Fprintf(&s, "> %s", m.input)
	return s.String()
}

func turnName(c model.Color) string {
	if c == model.White {
		return "White"
	}
	return "Black"
}
