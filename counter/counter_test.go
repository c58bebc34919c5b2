package counter

import (
	"bytes"
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/movegen"
)

// Totals computed independently from the transition rule.
var groundTruth = map[int]uint64{
	0: 0,
	1: 801,
	2: 7137,
	3: 62217,
	4: 535473,
	5: 4556433,
	6: 38338977,
	7: 319406385,
}

func sequentialCounter() *Counter {
	// thresholds high enough that nothing fans out
	return New(&config.Config{Threads: 1, ParallelDepth: 50, DedupDepth: 50})
}

func parallelCounter() *Counter {
	return New(&config.Config{Threads: 4, ParallelDepth: 2, DedupDepth: 50})
}

func dedupCounter() *Counter {
	return New(&config.Config{Threads: 4, ParallelDepth: 2, DedupDepth: 2})
}

func TestCountMovesGroundTruth(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := sequentialCounter()
	for depth := 0; depth <= 5; depth++ {
		is.Equal(c.CountMoves(ctx, depth), groundTruth[depth])
	}
}

func TestCountMovesGroundTruthDeep(t *testing.T) {
	if testing.Short() {
		t.Skip("deep counts take a while")
	}
	is := is.New(t)
	ctx := context.Background()
	c := New(&config.Config{Threads: 8, ParallelDepth: 5, DedupDepth: 6})
	for _, depth := range []int{6, 7} {
		is.Equal(c.CountMoves(ctx, depth), groundTruth[depth])
	}
}

func TestCountMovesStrictlyIncreasing(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := sequentialCounter()
	prev := uint64(0)
	for depth := 1; depth <= 5; depth++ {
		got := c.CountMoves(ctx, depth)
		is.True(got > prev)
		prev = got
	}
}

// The three strategies must agree exactly at every depth; thresholds are
// lowered so that the parallel and dedup paths run even at small depths.
func TestStrategiesAgree(t *testing.T) {
	ctx := context.Background()
	seq := sequentialCounter()
	par := parallelCounter()
	ded := dedupCounter()
	for depth := 1; depth <= 5; depth++ {
		want := seq.CountMoves(ctx, depth)
		assert.Equal(t, want, par.CountMoves(ctx, depth), "parallel, depth %d", depth)
		assert.Equal(t, want, ded.CountMoves(ctx, depth), "dedup, depth %d", depth)
	}
}

func TestCountFromMidGame(t *testing.T) {
	ctx := context.Background()
	p := board.StartingPosition()
	for _, cell := range []int{40, 44, 76, 40 + 1} {
		var gameOver bool
		p, gameOver = movegen.Apply(p, cell)
		require.False(t, gameOver)
		require.NoError(t, p.CheckValid())
	}
	seq := sequentialCounter()
	ded := dedupCounter()
	for depth := 1; depth <= 5; depth++ {
		assert.Equal(t, seq.CountFrom(ctx, p, depth), ded.CountFrom(ctx, p, depth),
			"depth %d", depth)
	}
}

func TestLayerLogStream(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := dedupCounter()
	var buf bytes.Buffer
	c.SetLogStream(&buf)
	c.CountMoves(ctx, 3)

	var layers []LayerLog
	is.NoErr(yaml.Unmarshal(buf.Bytes(), &layers))
	var dedup *LayerLog
	for i := range layers {
		if layers[i].Strategy == "dedup" {
			dedup = &layers[i]
		}
	}
	is.True(dedup != nil)
	is.Equal(len(dedup.Tasks), 15)
	var weight uint64
	for _, task := range dedup.Tasks {
		weight += task.Weight
	}
	is.Equal(weight, uint64(81))
}

func TestSequencesAccumulate(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	c := sequentialCounter()
	is.Equal(c.Sequences(), uint64(0))
	c.CountMoves(ctx, 1)
	c.CountMoves(ctx, 2)
	is.Equal(c.Sequences(), groundTruth[1]+groundTruth[2])
}
