// Package symmetry canonicalizes positions under the dihedral group of
// the square. Each of the 8 operations acts simultaneously on the 3x3
// arrangement of sub-boards and on the 3x3 cells within every
// sub-board, so it permutes all 81 cells while preserving the game's
// structure. Positions in the same orbit root isomorphic subtrees and
// therefore yield identical sequence counts.
package symmetry

import "github.com/domino14/uttt/board"

// NumOps is the order of the symmetry group.
const NumOps = 8

// The 8 operations as transforms of a 3x3 coordinate, in the fixed
// enumeration order used for tie-breaking: identity, three rotations,
// then the four reflections.
var transforms = [NumOps]func(r, c int) (int, int){
	func(r, c int) (int, int) { return r, c },
	func(r, c int) (int, int) { return c, 2 - r },
	func(r, c int) (int, int) { return 2 - r, 2 - c },
	func(r, c int) (int, int) { return 2 - c, r },
	func(r, c int) (int, int) { return r, 2 - c },
	func(r, c int) (int, int) { return 2 - r, c },
	func(r, c int) (int, int) { return c, r },
	func(r, c int) (int, int) { return 2 - c, 2 - r },
}

var (
	// cellPerms[op][cell] is the image cell of cell under op.
	cellPerms [NumOps][board.NumCells]uint8
	// fieldPerms[op][f] is the image sub-board of sub-board f.
	fieldPerms [NumOps][board.NumFields]uint8
)

func init() {
	for op, tf := range transforms {
		for f := 0; f < board.NumFields; f++ {
			nr, nc := tf(f/3, f%3)
			fieldPerms[op][f] = uint8(nr*3 + nc)
		}
		for cell := 0; cell < board.NumCells; cell++ {
			f, s := cell/board.FieldSize, cell%board.FieldSize
			cellPerms[op][cell] = fieldPerms[op][f]*board.FieldSize + fieldPerms[op][s]
		}
	}
}

func permuteMask(m board.Mask81, perm *[board.NumCells]uint8) board.Mask81 {
	var out board.Mask81
	for it := m; !it.IsZero(); it = it.ClearLowest() {
		out = out.SetBit(int(perm[it.LowestSetBit()]))
	}
	return out
}

func permuteMeta(meta uint16, perm *[board.NumFields]uint8) uint16 {
	var out uint16
	for f := 0; f < board.NumFields; f++ {
		if meta>>f&1 != 0 {
			out |= 1 << perm[f]
		}
	}
	return out
}

// Apply transforms every mask and meta field of p by operation op.
func Apply(op int, p board.Position) board.Position {
	cp := &cellPerms[op]
	fp := &fieldPerms[op]
	return board.Position{
		PlayerPlaced:    permuteMask(p.PlayerPlaced, cp),
		OpponentPlaced:  permuteMask(p.OpponentPlaced, cp),
		NextValid:       permuteMask(p.NextValid, cp),
		AvailableFields: permuteMask(p.AvailableFields, cp),
		MetaPlayer:      permuteMeta(p.MetaPlayer, fp),
		MetaOpponent:    permuteMeta(p.MetaOpponent, fp),
	}
}

// Cell tag bits of the per-cell descriptor compared lexicographically
// across operations.
const (
	tagValid    = 1 << 0
	tagOpponent = 1 << 1
	tagPlayer   = 1 << 2
)

// Canonical returns the canonical representative of p's orbit: the
// transform of p whose 81-cell descriptor array is lexicographically
// smallest, ties broken by the lowest operation index. Two positions
// are equivalent exactly when their canonical forms are equal, and
// canonicalizing a canonical position returns it unchanged.
func Canonical(p board.Position) board.Position {
	var desc [board.NumCells]uint8
	for cell := 0; cell < board.NumCells; cell++ {
		var t uint8
		if p.PlayerPlaced.Bit(cell) {
			t |= tagPlayer
		}
		if p.OpponentPlaced.Bit(cell) {
			t |= tagOpponent
		}
		if p.NextValid.Bit(cell) {
			t |= tagValid
		}
		desc[cell] = t
	}

	best := desc
	bestOp := 0
	for op := 1; op < NumOps; op++ {
		var permuted [board.NumCells]uint8
		for cell, t := range desc {
			permuted[cellPerms[op][cell]] = t
		}
		if less(&permuted, &best) {
			best = permuted
			bestOp = op
		}
	}
	if bestOp == 0 {
		return p
	}
	return Apply(bestOp, p)
}

func less(a, b *[board.NumCells]uint8) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
