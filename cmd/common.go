package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmehdipour/custgen/internal/db"
	"github.com/jmehdipour/custgen/internal/generator"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/manifest"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// generatorFlags are shared by every command that builds a batch.
func generatorFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("generator", pflag.ContinueOnError)
	fs.Int64("count", 0, "number of records (overrides generator.record_count)")
	fs.Int64("seed", 0, "random seed (overrides generator.seed)")
	fs.Int64("start", 0, "first sequence number (overrides generator.sequence_start)")
	return fs
}

// generatorOptions applies flag overrides on top of the loaded config and
// validates the result before anything is written.
func generatorOptions(cmd *cobra.Command, c config.Config) (generator.Options, error) {
	g := c.Generator
	if f := cmd.Flags(); f.Lookup("count") != nil {
		if f.Changed("count") {
			g.RecordCount, _ = f.GetInt64("count")
		}
		if f.Changed("seed") {
			g.Seed, _ = f.GetInt64("seed")
		}
		if f.Changed("start") {
			g.SequenceStart, _ = f.GetInt64("start")
		}
	}

	opts, err := g.Options()
	if err != nil {
		return opts, err
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	return opts, nil
}

// manifestStore connects to Redis when enabled; the returned client must be closed.
func manifestStore(c config.Config) (*manifest.Store, *redis.Client, error) {
	if !c.Redis.Enabled {
		return nil, nil, nil
	}
	rdb, err := db.NewRedisClient(c.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("redis connect: %w", err)
	}
	return manifest.NewStore(rdb, c.Redis.KeyPrefix, c.Redis.KeepRuns), rdb, nil
}

func requireRedis(c config.Config) (*manifest.Store, *redis.Client, error) {
	if !c.Redis.Enabled {
		return nil, nil, fmt.Errorf("%w: redis.enabled is false", config.ErrInvalidConfig)
	}
	return manifestStore(c)
}

// commandMetrics registers custgen metrics on a fresh registry. The returned
// func writes metrics.textfile and is deferred so failed runs are recorded too.
func commandMetrics(c config.Config) (*prometheus.Registry, func()) {
	reg := prometheus.NewRegistry()
	metrics.MustRegister(reg)
	return reg, func() {
		if err := metrics.WriteTextfile(c.Metrics.Textfile, reg); err != nil {
			logger.Log.Warn("write metrics textfile", zap.String("path", c.Metrics.Textfile), zap.Error(err))
		}
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
