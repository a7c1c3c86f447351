package cmd

import (
	"fmt"

	"github.com/jmehdipour/custgen/internal/export"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the customer dataset file",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generatorOptions(cmd, cfg)
		if err != nil {
			return err
		}

		formatFlag, _ := cmd.Flags().GetString("format")
		if !cmd.Flags().Changed("format") {
			formatFlag = cfg.Output.Format
		}
		format, err := export.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		dir := cfg.Output.Dir
		if cmd.Flags().Changed("out-dir") {
			dir, _ = cmd.Flags().GetString("out-dir")
		}

		store, rdb, err := manifestStore(cfg)
		if err != nil {
			return err
		}
		if rdb != nil {
			defer func() { _ = rdb.Close() }()
		}

		_, flushMetrics := commandMetrics(cfg)
		defer flushMetrics()

		ctx, stop := signalContext()
		defer stop()

		// a nil *manifest.Store must not become a non-nil interface
		var saver dataset.ManifestSaver
		if store != nil {
			saver = store
		}
		svc := dataset.New(afero.NewOsFs(), saver, logger.Log)
		res, err := svc.Generate(ctx, dataset.Request{
			Options: opts,
			Dir:     dir,
			File:    cfg.Output.File,
			Format:  format,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s (sha256 %s)\n",
			len(res.Records), res.File.Path, res.File.Checksum)
		return nil
	},
}

func init() {
	generateCmd.Flags().AddFlagSet(generatorFlags())
	generateCmd.Flags().String("format", "csv", "output format: csv|xlsx (overrides output.format)")
	generateCmd.Flags().String("out-dir", "", "output directory (overrides output.dir)")
}
