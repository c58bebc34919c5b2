// Package movegen implements the single-move transition rule of the
// nested tic-tac-toe variant: the cell you play inside a sub-board
// sends your opponent to the same-numbered sub-board, unless that
// sub-board is closed, in which case they may play anywhere open.
package movegen

import "github.com/domino14/uttt/board"

// Successor is one legal continuation from a parent Position.
type Successor struct {
	// Position has player/opponent roles already swapped, so its
	// PlayerPlaced belongs to the side now on turn.
	Position board.Position
	// Cell is the cell index (0..80) that was played.
	Cell int
	// GameOver is true when this move decided the meta-game or filled
	// the last open sub-board. Terminal successors have no children.
	GameOver bool
}

// Apply plays cell for the side to move and returns the successor
// position (roles swapped) and whether the game is now over. cell must
// be set in p.NextValid; Apply does not re-check legality.
func Apply(p board.Position, cell int) (board.Position, bool) {
	field := cell / board.FieldSize
	posInField := cell % board.FieldSize

	nextPlaced := p.PlayerPlaced.SetBit(cell)

	// Did this move close the sub-board it was played in?
	fieldOcc := p.PlayerPlaced.Field(field) | 1<<posInField
	won := board.FieldWon(fieldOcc)
	closed := won || (fieldOcc|p.OpponentPlaced.Field(field)) == board.FieldAll

	availableFields := p.AvailableFields
	metaPlaced := p.MetaPlayer
	if closed {
		availableFields = availableFields.AndNot(board.FieldMask(field))
		if won {
			metaPlaced |= 1 << field
		}
	}

	// The send rule: posInField names the sub-board the opponent must
	// play in next. If that sub-board is closed they may play anywhere
	// still open.
	sendMask := board.FieldMask(posInField)
	nextValid := sendMask
	if availableFields.And(sendMask).IsZero() {
		nextValid = availableFields
	}
	nextValid = nextValid.AndNot(nextPlaced).AndNot(p.OpponentPlaced)

	next := board.Position{
		PlayerPlaced:    p.OpponentPlaced,
		OpponentPlaced:  nextPlaced,
		NextValid:       nextValid,
		AvailableFields: availableFields,
		MetaPlayer:      p.MetaOpponent,
		MetaOpponent:    metaPlaced,
	}
	return next, closed && next.GameOver()
}

// AppendSuccessors appends one Successor per legal cell of p, in
// ascending cell order, and returns the extended slice.
func AppendSuccessors(dst []Successor, p board.Position) []Successor {
	for it := p.NextValid; !it.IsZero(); it = it.ClearLowest() {
		cell := it.LowestSetBit()
		next, gameOver := Apply(p, cell)
		dst = append(dst, Successor{Position: next, Cell: cell, GameOver: gameOver})
	}
	return dst
}
