package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartingPosition(t *testing.T) {
	p := StartingPosition()
	assert.NoError(t, p.CheckValid())
	assert.Equal(t, AllCells, p.NextValid)
	assert.Equal(t, AllCells, p.AvailableFields)
	assert.True(t, p.Occupied().IsZero())
	assert.Zero(t, p.MetaPlayer)
	assert.Zero(t, p.MetaOpponent)
}

func TestCheckValidViolations(t *testing.T) {
	p := StartingPosition()
	p.PlayerPlaced = p.PlayerPlaced.SetBit(40)
	p.OpponentPlaced = p.OpponentPlaced.SetBit(40)
	assert.Error(t, p.CheckValid())
	assert.Panics(t, p.AssertValid)

	// legal cell marked inside a closed sub-board
	q := StartingPosition()
	q.AvailableFields = q.AvailableFields.AndNot(FieldMask(0))
	q.MetaPlayer = 1
	assert.Error(t, q.CheckValid()) // NextValid still covers field 0

	q.NextValid = q.AvailableFields
	assert.NoError(t, q.CheckValid())

	// partial availability of a sub-board
	r := StartingPosition()
	r.AvailableFields = r.AvailableFields.AndNot(Mask81{}.SetBit(0))
	r.NextValid = r.AvailableFields
	assert.Error(t, r.CheckValid())
}

func TestCellMapping(t *testing.T) {
	assert.Equal(t, 0, Cell(0, 0))
	assert.Equal(t, 2, Cell(0, 2))
	assert.Equal(t, 9, Cell(0, 3))
	assert.Equal(t, 40, Cell(4, 4)) // center cell of the center sub-board
	assert.Equal(t, 80, Cell(8, 8))
}

func TestToDisplayText(t *testing.T) {
	p := StartingPosition()
	text := p.ToDisplayText()
	assert.Equal(t, 81, strings.Count(text, "."))
	assert.NotContains(t, text, "X")
	assert.NotContains(t, text, "O")

	p.PlayerPlaced = p.PlayerPlaced.SetBit(40)
	p.NextValid = p.NextValid.AndNot(Mask81{}.SetBit(40))
	text = p.ToDisplayText()
	assert.Equal(t, 1, strings.Count(text, "X"))
	assert.Equal(t, 80, strings.Count(text, "."))
}
