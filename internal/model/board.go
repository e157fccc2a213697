package model

import "strings"

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return ""
	}
	return ""
}

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is an immutable kind/color pair. The zero value is NoPiece.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var NoPiece = Piece{}

func (p Piece) IsZero() bool {
	return p == NoPiece
}

var pieceSymbols = map[Color]map[PieceType]string{
	White: {King: "♔", Queen: "♕", Rook: "♖", Bishop: "♗", Knight: "♘", Pawn: "♙"},
	Black: {King: "♚", Queen: "♛", Rook: "♜", Bishop: "♝", Knight: "♞", Pawn: "♟"},
}

func (p Piece) Symbol() string {
	if p.IsZero() {
		return "."
	}
	return pieceSymbols[p.Color][p.Type]
}

// Letter is the FEN-style letter: upper case for white, lower case for black.
func (p Piece) Letter() string {
	if p.IsZero() {
		return "."
	}
	letter := p.Type.getPieceNotation()
	if p.Type == Pawn {
		letter = "P"
	}
	if p.Color == Black {
		return strings.ToLower(letter)
	}
	return letter
}

// Direction is a (row, col) step.
type Direction struct {
	Row int
	Col int
}

var (
	DiagonalDirections   = []Direction{{Row: 1, Col: 1}, {Row: 1, Col: -1}, {Row: -1, Col: 1}, {Row: -1, Col: -1}}
	OrthogonalDirections = []Direction{{Row: 1, Col: 0}, {Row: -1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: -1}}
	AllDirections        = append(append([]Direction{}, OrthogonalDirections...), DiagonalDirections...)
	knightJumps          = []Direction{{Row: 2, Col: 1}, {Row: 2, Col: -1}, {Row: -2, Col: 1}, {Row: -2, Col: -1}, {Row: 1, Col: 2}, {Row: 1, Col: -2}, {Row: -1, Col: 2}, {Row: -1, Col: -2}}
)

// Board is a fixed 8x8 grid indexed [row][col]. It is a value type, so two
// boards compare equal with == exactly when every square holds the same piece.
type Board struct {
	squares [8][8]Piece
}

func NewBoard() Board {
	return Board{}
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// StartingBoard returns the standard opening layout with white on rows 0 and 1.
func StartingBoard() Board {
	var b Board
	for col, t := range backRank {
		b.squares[0][col] = Piece{Type: t, Color: White}
		b.squares[1][col] = Piece{Type: Pawn, Color: White}
		b.squares[6][col] = Piece{Type: Pawn, Color: Black}
		b.squares[7][col] = Piece{Type: t, Color: Black}
	}
	return b
}

func (b Board) IsInside(sq Square) bool {
	return sq.Inside()
}

func (b Board) IsEmpty(sq Square) bool {
	return sq.Inside() && b.squares[sq.Row][sq.Col].IsZero()
}

func (b Board) IsFriendly(sq Square, c Color) bool {
	if !sq.Inside() {
		return false
	}
	p := b.squares[sq.Row][sq.Col]
	return !p.IsZero() && p.Color == c
}

func (b Board) IsEnemy(sq Square, c Color) bool {
	if !sq.Inside() {
		return false
	}
	p := b.squares[sq.Row][sq.Col]
	return !p.IsZero() && p.Color != c
}

func (b Board) PieceAt(sq Square) Piece {
	if !sq.Inside() {
		return NoPiece
	}
	return b.squares[sq.Row][sq.Col]
}

// Place overwrites the slot at sq. Squares outside the board are ignored.
func (b *Board) Place(sq Square, p Piece) {
	if sq.Inside() {
		b.squares[sq.Row][sq.Col] = p
	}
}

func (b *Board) Remove(sq Square) Piece {
	p := b.PieceAt(sq)
	b.Place(sq, NoPiece)
	return p
}

// SlidingReach walks each direction until it leaves the board or meets a
// piece. An enemy square is included and ends the walk; a friendly one is not.
func (b Board) SlidingReach(sq Square, c Color, dirs []Direction) []Square {
	reach := []Square{}
	for _, dir := range dirs {
		target := sq.offset(dir)
		for target.Inside() {
			if b.IsEmpty(target) {
				reach = append(reach, target)
			} else if b.IsEnemy(target, c) {
				reach = append(reach, target)
				break
			} else {
				break
			}
			target = target.offset(dir)
		}
	}
	return reach
}

// Rows returns the grid with nil for empty squares, row 0 first.
func (b Board) Rows() [][]*Piece {
	rows := make([][]*Piece, 0, 8)
	for row := 0; row < 8; row++ {
		line := make([]*Piece, 8)
		for col := 0; col < 8; col++ {
			if p := b.squares[row][col]; !p.IsZero() {
				line[col] = &p
			}
		}
		rows = append(rows, line)
	}
	return rows
}

// String draws the board with rank 8 on top using piece letters.
func (b Board) String() string {
	var s strings.Builder
	for row := 7; row >= 0; row-- {
		s.WriteByte(byte('1' + row))
		for col := 0; col < 8; col++ {
			s.WriteByte(' ')
			s.WriteString(b.squares[row][col].Letter())
		}
		s.WriteByte('\n')
	}
	s.WriteString("  a b c d e f g h\n")
	return s.String()
}
