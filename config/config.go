package config

import (
	"errors"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config carries the engine's tunables. Values come from defaults, an
// optional uttt.yaml in the working directory, and UTTT_-prefixed
// environment variables, in increasing precedence.
type Config struct {
	// Threads is the worker pool size for the parallel layers.
	Threads int
	// ParallelDepth is the remaining search depth at or above which the
	// engine fans out across workers.
	ParallelDepth int
	// DedupDepth is the total search depth at or above which the root
	// layer deduplicates symmetric successors.
	DedupDepth int
	// MaxDepth is the deepest ply the batch driver enumerates.
	MaxDepth int
	// Debug enables debug-level logging.
	Debug bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("uttt")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("threads", runtime.NumCPU())
	v.SetDefault("parallel-depth", 7)
	v.SetDefault("dedup-depth", 7)
	v.SetDefault("max-depth", 9)
	v.SetDefault("debug", false)

	v.SetConfigName("uttt")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	c := &Config{
		Threads:       v.GetInt("threads"),
		ParallelDepth: v.GetInt("parallel-depth"),
		DedupDepth:    v.GetInt("dedup-depth"),
		MaxDepth:      v.GetInt("max-depth"),
		Debug:         v.GetBool("debug"),
	}
	return c, c.Validate()
}

func (c *Config) Validate() error {
	if c.Threads < 1 {
		return errors.New("threads must be at least 1")
	}
	// The leaf shortcut owns remaining depth 1, so fan-out may only
	// start above it.
	if c.ParallelDepth < 2 {
		return errors.New("parallel-depth must be at least 2")
	}
	if c.DedupDepth < c.ParallelDepth {
		return errors.New("dedup-depth must not be below parallel-depth")
	}
	if c.MaxDepth < 0 {
		return errors.New("max-depth must not be negative")
	}
	return nil
}
