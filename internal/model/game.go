package model

import "slices"

// Game holds one board, whose turn it is and the stack of applied moves.
// It is not safe for concurrent use; callers serialise access per game.
type Game struct {
	board   Board
	history []MoveRecord
	turn    Color
}

type GameState struct {
	Board          [][]*Piece     `json:"board"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []Ply          `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	LastMove       *SimpleMove    `json:"lastMove"` // nil before the first move
}

// CapturedPieces lists, per color, the pieces that color has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame() *Game {
	return NewGameFromBoard(StartingBoard(), White)
}

// NewGameFromBoard starts a game from an arbitrary position with no history.
func NewGameFromBoard(b Board, toMove Color) *Game {
	return &Game{
		board:   b,
		history: make([]MoveRecord, 0),
		turn:    toMove,
	}
}

func (g *Game) Turn() Color {
	return g.turn
}

func (g *Game) Board() Board {
	return g.board
}

func (g *Game) History() []MoveRecord {
	return slices.Clone(g.history)
}

func (g *Game) LastMove() (MoveRecord, bool) {
	if len(g.history) == 0 {
		return MoveRecord{}, false
	}
	return g.history[len(g.history)-1], true
}

// Reachable lists the destinations for the piece on sq, for highlighting.
func (g *Game) Reachable(sq Square) []Square {
	return ReachableSquares(g.board, sq)
}

// AttemptMove validates and applies a move. A *MoveRejectedError is returned
// when the move is refused, in which case nothing has changed.
func (g *Game) AttemptMove(from, to Square) (MoveRecord, error) {
	if err := g.validateMove(from, to); err != nil {
		return MoveRecord{}, &MoveRejectedError{Reason: err, From: from, To: to}
	}
	return g.executeMove(from, to), nil
}

func (g *Game) validateMove(from, to Square) error {
	piece := g.board.PieceAt(from)
	if piece.IsZero() {
		return ErrNoPieceAtOrigin
	}
	if piece.Color != g.turn {
		return ErrNotYourTurn
	}
	// a zero-length move would otherwise report the mover as its own blocker
	if from == to {
		return ErrIllegalPattern
	}
	if g.board.IsFriendly(to, piece.Color) {
		return ErrDestinationOccupiedByOwnPiece
	}
	if !slices.Contains(ReachableSquares(g.board, from), to) {
		return ErrIllegalPattern
	}
	return nil
}

func (g *Game) executeMove(from, to Square) MoveRecord {
	piece := g.board.Remove(from)
	record := MoveRecord{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: g.board.PieceAt(to),
	}
	g.board.Place(to, piece)
	g.history = append(g.history, record)
	g.switchTurn()
	return record
}

// Undo takes back the most recent move. It reports false, and does nothing,
// when there is no move to take back.
func (g *Game) Undo() (MoveRecord, bool) {
	record, ok := g.LastMove()
	if !ok {
		return MoveRecord{}, false
	}
	g.history = g.history[:len(g.history)-1]
	g.board.Place(record.From, record.Piece)
	g.board.Place(record.To, record.Captured)
	g.turn = record.Piece.Color
	return record, true
}

func (g *Game) switchTurn() {
	g.turn = g.turn.Other()
}

// Snapshot builds the JSON view sent to clients.
func (g *Game) Snapshot() GameState {
	state := GameState{
		Board:       g.board.Rows(),
		ToMove:      g.turn,
		MoveHistory: make([]Ply, 0, len(g.history)),
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
	}
	for _, record := range g.history {
		state.MoveHistory = append(state.MoveHistory, record.Ply())
		if !record.IsCapture() {
			continue
		}
		switch record.Piece.Color {
		case White:
			state.CapturedPieces.White = append(state.CapturedPieces.White, record.Captured)
		case Black:
			state.CapturedPieces.Black = append(state.CapturedPieces.Black, record.Captured)
		}
	}
	if last, ok := g.LastMove(); ok {
		state.LastMove = &SimpleMove{From: last.From, To: last.To}
	}
	return state
}
