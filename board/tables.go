package board

// FieldAll is a fully-occupied sub-board.
const FieldAll = uint16(1)<<FieldSize - 1

// The eight three-in-a-row patterns of a 3x3 board: both diagonals,
// three rows, three columns.
var winPatterns = [8]uint16{0o421, 0o124, 0o700, 0o070, 0o007, 0o111, 0o222, 0o444}

var (
	winTable   [1 << FieldSize]bool
	fieldMasks [NumFields]Mask81
)

func init() {
	for occ := range winTable {
		for _, w := range winPatterns {
			if uint16(occ)&w == w {
				winTable[occ] = true
				break
			}
		}
	}
	for f := range fieldMasks {
		for i := 0; i < FieldSize; i++ {
			fieldMasks[f] = fieldMasks[f].SetBit(f*FieldSize + i)
		}
	}
}

// FieldWon reports whether a 9-bit occupancy contains a three-in-a-row.
// It works equally on a meta occupancy of won sub-boards.
func FieldWon(occ uint16) bool {
	return winTable[occ]
}

// FieldMask returns the 81-bit mask selecting the 9 cells of sub-board f.
func FieldMask(f int) Mask81 {
	return fieldMasks[f]
}
