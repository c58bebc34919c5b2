package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/uttt/config"
	"github.com/domino14/uttt/counter"
	"github.com/domino14/uttt/shell"
	"github.com/domino14/uttt/stats"
)

var (
	profilePath = flag.String("profilepath", "", "path for profile")
	shellMode   = flag.Bool("shell", false, "start the interactive explorer")
	maxDepth    = flag.Int("maxdepth", 0, "deepest ply to enumerate (overrides config)")
	threads     = flag.Int("threads", 0, "worker count (overrides config)")
	repeats     = flag.Int("repeats", 1, "runs per depth; >1 reports mean time with a 99% CI")
	logFile     = flag.String("logfile", "", "write the engine's per-layer YAML log to this file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if *maxDepth > 0 {
		cfg.MaxDepth = *maxDepth
	}
	if *threads > 0 {
		cfg.Threads = *threads
	}

	if *shellMode {
		sc, err := shell.NewShellController(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("starting shell")
		}
		sc.Loop()
		return
	}

	c := counter.New(cfg)
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal().Err(err).Msg("creating log file")
		}
		defer f.Close()
		c.SetLogStream(f)
	}

	ctx := log.Logger.WithContext(context.Background())
	for depth := 1; depth <= cfg.MaxDepth; depth++ {
		fmt.Printf("depth = %d\n", depth)
		var timing stats.Statistic
		var result uint64
		for run := 0; run < max(1, *repeats); run++ {
			start := time.Now()
			result = c.CountMoves(ctx, depth)
			timing.Push(float64(time.Since(start).Milliseconds()))
		}
		if *repeats > 1 {
			fmt.Printf("result = %d, time = %.0f±%.0fms over %d runs\n",
				result, timing.Mean(), timing.ConfidenceMargin(99), timing.Iterations())
		} else {
			fmt.Printf("result = %d, time = %.0fms\n", result, timing.Last())
		}
	}
}
