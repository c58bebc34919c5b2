package board

import (
	"testing"

	"github.com/matryer/is"
)

func TestFieldWon(t *testing.T) {
	is := is.New(t)
	is.True(!FieldWon(0))
	is.True(FieldWon(FieldAll))
	is.True(FieldWon(0o007)) // top row
	is.True(FieldWon(0o700)) // bottom row
	is.True(FieldWon(0o111)) // column
	is.True(FieldWon(0o421)) // diagonal
	is.True(FieldWon(0o124)) // anti-diagonal
	is.True(!FieldWon(0o420))
	is.True(!FieldWon(0o033)) // two cells of two rows
}

func TestWinTableCardinality(t *testing.T) {
	is := is.New(t)
	// Of the 512 sub-board occupancies, exactly 282 contain a line.
	won := 0
	for occ := uint16(0); occ < 1<<FieldSize; occ++ {
		if FieldWon(occ) {
			won++
		}
	}
	is.Equal(won, 282)
}

func TestFieldMasks(t *testing.T) {
	is := is.New(t)
	var union Mask81
	for f := 0; f < NumFields; f++ {
		m := FieldMask(f)
		is.Equal(m.OnesCount(), FieldSize)
		is.True(union.And(m).IsZero()) // fields don't overlap
		union = union.Or(m)
		is.Equal(m.Field(f), FieldAll)
	}
	is.Equal(union, AllCells)
}
