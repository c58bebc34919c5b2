package board

import "math/bits"

// NumCells is the total number of cells on the nested board: a 3x3 grid
// of 3x3 sub-boards.
const NumCells = 81

// NumFields is the number of sub-boards ("fields").
const NumFields = 9

// FieldSize is the number of cells in a single sub-board.
const FieldSize = 9

// Mask81 is an 81-bit cell set. Cell i of field f is bit f*9+i; bits
// 0..63 live in Lo and bits 64..80 in Hi. Mask81 is a plain value type
// and is comparable, so it can key maps directly.
type Mask81 struct {
	Lo, Hi uint64
}

// AllCells has every cell bit set.
var AllCells = Mask81{Lo: ^uint64(0), Hi: 1<<(NumCells-64) - 1}

func (m Mask81) And(o Mask81) Mask81 {
	return Mask81{m.Lo & o.Lo, m.Hi & o.Hi}
}

func (m Mask81) Or(o Mask81) Mask81 {
	return Mask81{m.Lo | o.Lo, m.Hi | o.Hi}
}

// AndNot clears from m every bit set in o.
func (m Mask81) AndNot(o Mask81) Mask81 {
	return Mask81{m.Lo &^ o.Lo, m.Hi &^ o.Hi}
}

func (m Mask81) IsZero() bool {
	return m.Lo == 0 && m.Hi == 0
}

func (m Mask81) OnesCount() int {
	return bits.OnesCount64(m.Lo) + bits.OnesCount64(m.Hi)
}

func (m Mask81) Bit(cell int) bool {
	if cell < 64 {
		return m.Lo>>cell&1 != 0
	}
	return m.Hi>>(cell-64)&1 != 0
}

func (m Mask81) SetBit(cell int) Mask81 {
	if cell < 64 {
		m.Lo |= 1 << cell
	} else {
		m.Hi |= 1 << (cell - 64)
	}
	return m
}

// LowestSetBit returns the index of the lowest set cell. m must not be
// zero.
func (m Mask81) LowestSetBit() int {
	if m.Lo != 0 {
		return bits.TrailingZeros64(m.Lo)
	}
	return 64 + bits.TrailingZeros64(m.Hi)
}

// ClearLowest clears the lowest set bit. Together with LowestSetBit it
// iterates cells in ascending order:
//
//	for it := m; !it.IsZero(); it = it.ClearLowest() {
//		cell := it.LowestSetBit()
//	}
func (m Mask81) ClearLowest() Mask81 {
	if m.Lo != 0 {
		m.Lo &= m.Lo - 1
	} else {
		m.Hi &= m.Hi - 1
	}
	return m
}

// Field extracts the 9-bit occupancy of sub-board f. Field 7 straddles
// the Lo/Hi boundary, hence the double shift.
func (m Mask81) Field(f int) uint16 {
	n := uint(f) * FieldSize
	if n >= 64 {
		return uint16(m.Hi >> (n - 64) & uint64(FieldAll))
	}
	return uint16((m.Lo>>n | m.Hi<<(64-n)) & uint64(FieldAll))
}
