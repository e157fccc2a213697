package model

// ReachableSquares returns the squares the piece on sq may move to by its
// movement pattern alone. Whether the move exposes the mover's king is not
// considered. An empty origin yields no squares.
func ReachableSquares(b Board, sq Square) []Square {
	piece := b.PieceAt(sq)
	if piece.IsZero() {
		return []Square{}
	}
	switch piece.Type {
	case Pawn:
		return pawnReach(&b, sq, piece.Color)
	case Knight:
		return stepReach(&b, sq, piece.Color, knightJumps)
	case Bishop:
		return b.SlidingReach(sq, piece.Color, DiagonalDirections)
	case Rook:
		return b.SlidingReach(sq, piece.Color, OrthogonalDirections)
	case Queen:
		return b.SlidingReach(sq, piece.Color, AllDirections)
	case King:
		return stepReach(&b, sq, piece.Color, AllDirections)
	default:
		return []Square{}
	}
}

func pawnDirection(c Color) (forward int, startRow int) {
	if c == Black {
		return -1, 6
	}
	return 1, 1
}

func pawnReach(b *Board, sq Square, c Color) []Square {
	pawnMoves := []Square{}
	forward, startRow := pawnDirection(c)

	// push one, then two from the start rank
	one := Square{Row: sq.Row + forward, Col: sq.Col}
	if b.IsEmpty(one) {
		pawnMoves = append(pawnMoves, one)
		two := Square{Row: sq.Row + 2*forward, Col: sq.Col}
		if sq.Row == startRow && b.IsEmpty(two) {
			pawnMoves = append(pawnMoves, two)
		}
	}
	// captures
	for _, dc := range []int{-1, 1} {
		target := Square{Row: sq.Row + forward, Col: sq.Col + dc}
		if b.IsEnemy(target, c) {
			pawnMoves = append(pawnMoves, target)
		}
	}
	return pawnMoves
}

// stepReach covers the single-step movers: knight jumps and king steps.
func stepReach(b *Board, sq Square, c Color, steps []Direction) []Square {
	moves := []Square{}
	for _, step := range steps {
		target := sq.offset(step)
		if target.Inside() && !b.IsFriendly(target, c) {
			moves = append(moves, target)
		}
	}
	return moves
}
