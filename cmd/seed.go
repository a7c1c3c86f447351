package cmd

import (
	"fmt"

	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed an OLTP customer table with the generated dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generatorOptions(cmd, cfg)
		if err != nil {
			return err
		}
		sink, _ := cmd.Flags().GetString("sink")
		truncate, _ := cmd.Flags().GetBool("truncate")

		_, flushMetrics := commandMetrics(cfg)
		defer flushMetrics()

		records, _, err := dataset.New(afero.NewMemMapFs(), nil, logger.Log).Build(opts)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		repo, _, closeFn, err := openSink(ctx, cfg, sink)
		if err != nil {
			return err
		}
		defer closeFn()

		if truncate {
			if err := repo.Truncate(ctx); err != nil {
				return fmt.Errorf("truncate %s: %w", cfg.Sink.Table, err)
			}
			logger.Log.Info("table truncated", zap.String("sink", sink), zap.String("table", cfg.Sink.Table))
		}

		n, err := repo.InsertBatch(ctx, records)
		metrics.SinkRows.WithLabelValues(sink).Add(float64(n))
		if err != nil {
			return fmt.Errorf("seed %s (%d/%d rows written): %w", sink, n, len(records), err)
		}

		total, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("count %s: %w", cfg.Sink.Table, err)
		}
		logger.Log.Info("seed completed",
			zap.String("sink", sink),
			zap.Int64("rows", n),
			zap.Int64("table_rows", total),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().AddFlagSet(generatorFlags())
	seedCmd.Flags().String("sink", "mysql", "target database: postgres|mysql|clickhouse")
	seedCmd.Flags().Bool("truncate", false, "empty the table before loading")
}
