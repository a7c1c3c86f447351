package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/jmehdipour/custgen/internal/export"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/manifest"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Regenerate in memory and compare with the baseline run and the file on disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := generatorOptions(cmd, cfg)
		if err != nil {
			return err
		}
		format, err := export.ParseFormat(cfg.Output.Format)
		if err != nil {
			return err
		}

		store, rdb, err := requireRedis(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		osFs := afero.NewOsFs()
		sum, err := dataset.New(osFs, nil, logger.Log).Checksum(opts, format)
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		fp := dataset.Fingerprint(opts, format)
		base, err := store.Verify(ctx, fp, sum)
		if err != nil {
			if errors.Is(err, manifest.ErrNotFound) {
				return fmt.Errorf("no baseline for fingerprint %s, run generate first: %w", fp, err)
			}
			return err
		}

		path := filepath.Join(cfg.Output.Dir, dataset.FileName(cfg.Output.File, format))
		b, err := afero.ReadFile(osFs, path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Log.Info("output file absent, skipped", zap.String("path", path))
		case err != nil:
			return fmt.Errorf("read %s: %w", path, err)
		case export.Checksum(b) != sum:
			return fmt.Errorf("%w: %s differs from regenerated output", manifest.ErrChecksumMismatch, path)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ok: fingerprint %s matches baseline run %s (sha256 %s)\n", fp, base.RunID, sum)
		return nil
	},
}

func init() {
	verifyCmd.Flags().AddFlagSet(generatorFlags())
}
