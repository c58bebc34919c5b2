package counter

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/domino14/uttt/movegen"
)

// LayerLog records one fanned-out layer's per-task results, for
// serializing to a log stream for debugging.
type LayerLog struct {
	Strategy  string    `yaml:"strategy"`
	Remaining int       `yaml:"remaining"`
	Tasks     []TaskLog `yaml:"tasks"`
}

// TaskLog is a single worker task within a layer. For a dedup layer,
// Weight is the canonical class multiplicity; otherwise it is 1 and
// Cell identifies the branch.
type TaskLog struct {
	Cell   int    `yaml:"cell,omitempty"`
	Weight uint64 `yaml:"weight"`
	Count  uint64 `yaml:"count"`
}

// Layers can finish concurrently; serialize writes to the stream.
var logStreamMu sync.Mutex

func (c *Counter) writeLayerLog(ctx context.Context, strategy string, remaining int, succs []movegen.Successor, weights, results []uint64) {
	if c.logStream == nil {
		return
	}
	ll := LayerLog{Strategy: strategy, Remaining: remaining}
	for i, count := range results {
		task := TaskLog{Weight: 1, Count: count}
		if succs != nil {
			task.Cell = succs[i].Cell
		}
		if weights != nil {
			task.Weight = weights[i]
		}
		ll.Tasks = append(ll.Tasks, task)
	}
	out, err := yaml.Marshal([]LayerLog{ll})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("marshalling layer log")
		return
	}
	logStreamMu.Lock()
	c.logStream.Write(out)
	logStreamMu.Unlock()
}
