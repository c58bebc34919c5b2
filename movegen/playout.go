package movegen

import (
	"lukechampine.com/frand"

	"github.com/domino14/uttt/board"
)

// RandomPlayout plays up to maxPlies uniformly random legal moves from
// p and returns the position after each ply, stopping early when a move
// ends the game (the terminal position is included). It is used by the
// shell's random command and by invariant tests.
func RandomPlayout(p board.Position, maxPlies int) []board.Position {
	positions := make([]board.Position, 0, maxPlies)
	for ply := 0; ply < maxPlies; ply++ {
		n := p.NextValid.OnesCount()
		if n == 0 {
			break
		}
		pick := frand.Intn(n)
		it := p.NextValid
		for ; pick > 0; pick-- {
			it = it.ClearLowest()
		}
		next, gameOver := Apply(p, it.LowestSetBit())
		positions = append(positions, next)
		if gameOver {
			break
		}
		p = next
	}
	return positions
}
