package symmetry

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/movegen"
)

func TestPermutationsAreBijections(t *testing.T) {
	is := is.New(t)
	for op := 0; op < NumOps; op++ {
		var seen [board.NumCells]bool
		for _, img := range cellPerms[op] {
			is.True(!seen[img])
			seen[img] = true
		}
		var seenF [board.NumFields]bool
		for _, img := range fieldPerms[op] {
			is.True(!seenF[img])
			seenF[img] = true
		}
	}
}

func TestIdentityOp(t *testing.T) {
	is := is.New(t)
	for cell, img := range cellPerms[0] {
		is.Equal(int(img), cell)
	}
	p := board.StartingPosition()
	is.Equal(Apply(0, p), p)
}

func TestApplyPreservesStructure(t *testing.T) {
	is := is.New(t)
	for trial := 0; trial < 20; trial++ {
		for _, p := range movegen.RandomPlayout(board.StartingPosition(), 25) {
			for op := 0; op < NumOps; op++ {
				q := Apply(op, p)
				is.NoErr(q.CheckValid())
				is.Equal(q.PlayerPlaced.OnesCount(), p.PlayerPlaced.OnesCount())
				is.Equal(q.NextValid.OnesCount(), p.NextValid.OnesCount())
			}
		}
	}
}

func TestCanonicalIdempotent(t *testing.T) {
	is := is.New(t)
	for trial := 0; trial < 30; trial++ {
		for _, p := range movegen.RandomPlayout(board.StartingPosition(), 20) {
			c := Canonical(p)
			is.Equal(Canonical(c), c)
		}
	}
}

func TestCanonicalInvariantUnderSymmetry(t *testing.T) {
	is := is.New(t)
	for trial := 0; trial < 30; trial++ {
		for _, p := range movegen.RandomPlayout(board.StartingPosition(), 20) {
			c := Canonical(p)
			for op := 0; op < NumOps; op++ {
				is.Equal(Canonical(Apply(op, p)), c)
			}
		}
	}
}

// The 81 opening moves fall into 15 orbits under the dihedral group: one
// singleton (center cell of the center sub-board), eight orbits of four
// (cells on a mirror axis) and six orbits of eight.
func TestOpeningOrbits(t *testing.T) {
	is := is.New(t)
	succs := movegen.AppendSuccessors(nil, board.StartingPosition())
	multiplicity := map[board.Position]int{}
	for _, s := range succs {
		multiplicity[Canonical(s.Position)]++
	}
	is.Equal(len(multiplicity), 15)
	histogram := map[int]int{}
	total := 0
	for _, m := range multiplicity {
		histogram[m]++
		total += m
	}
	is.Equal(total, 81)
	is.Equal(histogram, map[int]int{1: 1, 4: 8, 8: 6})
}
