// Package counter exhaustively counts legal move sequences of the
// nested tic-tac-toe variant. Three strategies escalate with the depth
// still to search: plain sequential recursion near the leaves, parallel
// fan-out over successors higher up, and, at the root of a deep enough
// search, symmetry deduplication that folds the successor set into
// canonical classes before fanning out.
package counter

import (
	"context"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/uttt/board"
	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/movegen"
	"github.com/domino14/uttt/symmetry"
)

type Counter struct {
	threads int
	// parallelDepth is the remaining depth at or above which a layer
	// fans out across workers instead of recursing in place.
	parallelDepth int
	// dedupDepth is the total search depth at or above which the root
	// layer merges symmetric successors before fanning out. Dedup runs
	// at exactly one layer (the root), where subtrees are largest.
	dedupDepth int

	sequences atomic.Uint64

	logStream io.Writer
}

func New(cfg *config.Config) *Counter {
	c := &Counter{
		threads:       cfg.Threads,
		parallelDepth: cfg.ParallelDepth,
		dedupDepth:    cfg.DedupDepth,
	}
	if c.threads < 1 {
		c.threads = max(1, runtime.NumCPU())
	}
	// The transition tables and per-branch positions are tiny; only the
	// worker count is worth sizing to the machine.
	log.Debug().Int("threads", c.threads).
		Int("parallel-depth", c.parallelDepth).
		Int("dedup-depth", c.dedupDepth).
		Uint64("total-memory", memory.TotalMemory()).
		Msg("counter-init")
	return c
}

func (c *Counter) SetThreads(threads int) {
	if threads < 1 {
		threads = 1
	}
	c.threads = threads
}

func (c *Counter) Threads() int {
	return c.threads
}

// SetLogStream directs a YAML record of each parallel layer's per-task
// results to w, for debugging and offline analysis.
func (c *Counter) SetLogStream(w io.Writer) {
	c.logStream = w
}

// Sequences returns the number of sequences counted since construction,
// across all CountMoves calls.
func (c *Counter) Sequences() uint64 {
	return c.sequences.Load()
}

// CountMoves returns the total number of distinct legal move sequences
// within depth plies of the starting position. A depth of 0 counts
// nothing.
func (c *Counter) CountMoves(ctx context.Context, depth int) uint64 {
	return c.CountFrom(ctx, board.StartingPosition(), depth)
}

// CountFrom counts move sequences of up to depth plies extending root.
func (c *Counter) CountFrom(ctx context.Context, root board.Position, depth int) uint64 {
	if depth == 0 {
		return 0
	}
	logger := zerolog.Ctx(ctx)
	start := time.Now()

	var total uint64
	var strategy string
	switch {
	case depth >= c.dedupDepth:
		strategy = "dedup-parallel"
		total = c.countDedup(ctx, root, depth)
	case depth >= c.parallelDepth:
		strategy = "parallel"
		total = c.countParallel(ctx, root, depth)
	default:
		strategy = "sequential"
		total = countSequential(root, depth)
	}
	c.sequences.Add(total)

	elapsed := time.Since(start)
	logger.Debug().Int("depth", depth).Str("strategy", strategy).
		Uint64("total", total).
		Float64("seqs-per-sec", float64(total)/elapsed.Seconds()).
		Dur("elapsed", elapsed).Msg("count-moves")
	return total
}

// countSequential is the hot path: every legal move contributes one
// sequence, plus the sequences extending it. At one remaining ply the
// grandchildren are counted from the successor's legal-move popcount
// without materializing them.
func countSequential(p board.Position, remaining int) uint64 {
	var total uint64
	for it := p.NextValid; !it.IsZero(); it = it.ClearLowest() {
		next, gameOver := movegen.Apply(p, it.LowestSetBit())
		total++
		if gameOver {
			continue
		}
		if remaining == 1 {
			total += uint64(next.NextValid.OnesCount())
		} else {
			total += countSequential(next, remaining-1)
		}
	}
	return total
}

// count dispatches on the remaining depth. Dedup never applies below
// the root, so only the parallel/sequential split matters here.
func (c *Counter) count(ctx context.Context, p board.Position, remaining int) uint64 {
	if remaining >= c.parallelDepth {
		return c.countParallel(ctx, p, remaining)
	}
	return countSequential(p, remaining)
}

// countParallel evaluates each successor's subtree on its own worker.
// Every branch owns its Position value outright, so the only
// cross-worker communication is the final summation, which is
// order-independent.
func (c *Counter) countParallel(ctx context.Context, p board.Position, remaining int) uint64 {
	succs := movegen.AppendSuccessors(nil, p)
	results := make([]uint64, len(succs))

	g := errgroup.Group{}
	g.SetLimit(c.threads)
	for i, succ := range succs {
		if succ.GameOver {
			continue
		}
		i, succ := i, succ
		g.Go(func() error {
			results[i] = c.count(ctx, succ.Position, remaining-1)
			return nil
		})
	}
	g.Wait()

	c.writeLayerLog(ctx, "parallel", remaining, succs, nil, results)
	return uint64(len(succs)) + lo.Sum(results)
}

// countDedup canonicalizes every successor and recurses once per
// distinct canonical form, weighting each result by the number of
// successors that mapped to it. Symmetric subtrees are isomorphic, so
// this undercounts nothing as long as the multiplicities are exact.
func (c *Counter) countDedup(ctx context.Context, p board.Position, remaining int) uint64 {
	logger := zerolog.Ctx(ctx)
	succs := movegen.AppendSuccessors(nil, p)

	multiplicity := make(map[board.Position]uint64, len(succs))
	classes := make([]board.Position, 0, len(succs))
	for _, succ := range succs {
		if succ.GameOver {
			continue
		}
		canonical := symmetry.Canonical(succ.Position)
		if _, seen := multiplicity[canonical]; !seen {
			classes = append(classes, canonical)
		}
		multiplicity[canonical]++
	}
	logger.Debug().Int("successors", len(succs)).Int("classes", len(classes)).
		Msg("dedup-layer")

	results := make([]uint64, len(classes))
	g := errgroup.Group{}
	g.SetLimit(c.threads)
	for i, class := range classes {
		i, class := i, class
		g.Go(func() error {
			results[i] = multiplicity[class] * c.count(ctx, class, remaining-1)
			return nil
		})
	}
	g.Wait()

	c.writeLayerLog(ctx, "dedup", remaining, nil, multiplicityOf(classes, multiplicity), results)
	return uint64(len(succs)) + lo.Sum(results)
}

func multiplicityOf(classes []board.Position, m map[board.Position]uint64) []uint64 {
	return lo.Map(classes, func(class board.Position, _ int) uint64 {
		return m[class]
	})
}
