package cmd

import (
	"fmt"

	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the customer table if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, _ := cmd.Flags().GetString("sink")
		ddl, err := repository.Migration(sink, cfg.Sink.Table)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		_, exec, closeFn, err := openSink(ctx, cfg, sink)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := exec(ctx, ddl); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}

		logger.Log.Info("migration complete", zap.String("sink", sink), zap.String("table", cfg.Sink.Table))
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("sink", "mysql", "target database: postgres|mysql|clickhouse")
}
