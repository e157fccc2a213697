package model

import "fmt"

// MoveRecord is one applied move: enough to put the board back exactly.
type MoveRecord struct {
	From     Square `json:"from"`
	To       Square `json:"to"`
	Piece    Piece  `json:"piece"`
	Captured Piece  `json:"-"`
}

// IsCapture reports whether the move took an enemy piece.
func (m MoveRecord) IsCapture() bool {
	return !m.Captured.IsZero()
}

// Notation renders a short algebraic form without check marks, e.g. "Nf3", "exd5".
func (m MoveRecord) Notation() string {
	prefix := m.Piece.Type.getPieceNotation()
	capture := ""
	if m.IsCapture() {
		capture = "x"
	}
	pawnFileSpecifier := ""
	if m.Piece.Type == Pawn && m.From.Col != m.To.Col {
		pawnFileSpecifier = m.From.getFileNotation()
	}
	return fmt.Sprintf("%s%s%s%s", prefix, pawnFileSpecifier, capture, m.To.String())
}

// Ply is the wire form of a MoveRecord.
type Ply struct {
	Piece         Piece  `json:"piece"`
	From          Square `json:"from"`
	To            Square `json:"to"`
	CapturedPiece *Piece `json:"capturedPiece"`
	Notation      string `json:"notation"`
}

func (m MoveRecord) Ply() Ply {
	ply := Ply{
		Piece:    m.Piece,
		From:     m.From,
		To:       m.To,
		Notation: m.Notation(),
	}
	if m.IsCapture() {
		captured := m.Captured
		ply.CapturedPiece = &captured
	}
	return ply
}

type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}
