package board

import (
	"fmt"
	"strings"
)

// Position is the full game state. It is a plain value: plays derive new
// Positions, nothing mutates one in place, and it is comparable so it
// can key maps. Roles swap every ply, so PlayerPlaced always belongs to
// the side to move.
type Position struct {
	// PlayerPlaced are cells occupied by the side to move.
	PlayerPlaced Mask81
	// OpponentPlaced are cells occupied by the other side.
	OpponentPlaced Mask81
	// NextValid are the cells the side to move may play this turn.
	NextValid Mask81
	// AvailableFields is the union of the cell blocks of every sub-board
	// still open (neither won nor full).
	AvailableFields Mask81
	// MetaPlayer and MetaOpponent record which sub-boards each side has
	// won, one bit per sub-board.
	MetaPlayer   uint16
	MetaOpponent uint16
}

// StartingPosition returns the empty board: every cell playable, every
// sub-board open.
func StartingPosition() Position {
	return Position{
		NextValid:       AllCells,
		AvailableFields: AllCells,
	}
}

func (p Position) Occupied() Mask81 {
	return p.PlayerPlaced.Or(p.OpponentPlaced)
}

// GameOver reports whether the position is terminal: the side that just
// moved holds a meta three-in-a-row, or no sub-board is open. No legal
// sequence extends a terminal position.
func (p Position) GameOver() bool {
	return FieldWon(p.MetaOpponent) || p.AvailableFields.IsZero()
}

// CheckValid verifies the structural invariants that every reachable
// Position must satisfy. A violation means the transition logic itself
// is broken, so callers treat a non-nil error as fatal.
func (p Position) CheckValid() error {
	if !p.PlayerPlaced.And(p.OpponentPlaced).IsZero() {
		return fmt.Errorf("occupancy masks overlap: %v", p)
	}
	if !p.NextValid.AndNot(p.AvailableFields).IsZero() {
		return fmt.Errorf("next-valid outside open sub-boards: %v", p)
	}
	if !p.NextValid.And(p.Occupied()).IsZero() {
		return fmt.Errorf("next-valid includes occupied cells: %v", p)
	}
	meta := p.MetaPlayer | p.MetaOpponent
	for f := 0; f < NumFields; f++ {
		avail := p.AvailableFields.Field(f)
		if avail != 0 && avail != FieldAll {
			return fmt.Errorf("sub-board %d partially available: %v", f, p)
		}
		closed := meta>>f&1 != 0 || p.Occupied().Field(f) == FieldAll
		if (avail == 0) != closed {
			return fmt.Errorf("sub-board %d availability disagrees with closure: %v", f, p)
		}
	}
	return nil
}

// AssertValid panics on an invariant violation. Used in tests and debug
// paths only.
func (p Position) AssertValid() {
	if err := p.CheckValid(); err != nil {
		panic(err)
	}
}

// Cell returns the index of the cell at overall row r, column c of the
// 9x9 grid.
func Cell(r, c int) int {
	return (r/3*3+c/3)*FieldSize + r%3*3 + c%3
}

// ToDisplayText draws the 9x9 grid. X is the side to move, O the
// opponent, and a dot marks a currently-legal cell.
func (p Position) ToDisplayText() string {
	var sb strings.Builder
	for r := 0; r < 9; r++ {
		if r > 0 && r%3 == 0 {
			sb.WriteString("---+---+---\n")
		}
		for c := 0; c < 9; c++ {
			if c > 0 && c%3 == 0 {
				sb.WriteByte('|')
			}
			cell := Cell(r, c)
			switch {
			case p.PlayerPlaced.Bit(cell):
				sb.WriteByte('X')
			case p.OpponentPlaced.Bit(cell):
				sb.WriteByte('O')
			case p.NextValid.Bit(cell):
				sb.WriteByte('.')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
