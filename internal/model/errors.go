package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidNotation = errors.New("invalid notation")

	ErrNoPieceAtOrigin               = errors.New("no piece at origin")
	ErrNotYourTurn                   = errors.New("not your turn")
	ErrDestinationOccupiedByOwnPiece = errors.New("destination occupied by own piece")
	ErrIllegalPattern                = errors.New("illegal move pattern")
)

// MoveRejectedError reports why AttemptMove refused a move. The board is
// untouched whenever one is returned.
type MoveRejectedError struct {
	Reason error
	From   Square
	To     Square
}

func (e *MoveRejectedError) Error() string {
	return fmt.Sprintf("move %s %s rejected: %v", e.From, e.To, e.Reason)
}

func (e *MoveRejectedError) Unwrap() error {
	return e.Reason
}

// ReasonCode is the short machine-readable name of a rejection, used on the wire.
func ReasonCode(err error) string {
	switch {
	case errors.Is(err, ErrNoPieceAtOrigin):
		return "no_piece_at_origin"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrDestinationOccupiedByOwnPiece):
		return "destination_occupied_by_own_piece"
	case errors.Is(err, ErrIllegalPattern):
		return "illegal_pattern"
	case errors.Is(err, ErrInvalidNotation):
		return "invalid_notation"
	}
	return ""
}
