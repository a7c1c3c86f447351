package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	httpSrv "github.com/jmehdipour/custgen/internal/http"
	"github.com/jmehdipour/custgen/internal/logger"
	"github.com/jmehdipour/custgen/internal/metrics"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP preview server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := generatorOptions(cmd, cfg); err != nil {
			return err
		}

		store, rdb, err := manifestStore(cfg)
		if err != nil {
			return err
		}
		var rds *redis.Client
		if store != nil {
			rds = rdb
			defer func() { _ = rdb.Close() }()
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics.MustRegister(reg)

		svc := dataset.New(afero.NewMemMapFs(), nil, logger.Log)
		server := httpSrv.NewServer(cfg, svc, rds, reg, logger.Log)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		ctx, stop := signalContext()
		defer stop()

		select {
		case <-ctx.Done():
			logger.Log.Info("signal received, shutting down")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Log.Error("http server exited", zap.Error(err))
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}
