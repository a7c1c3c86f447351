package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jmehdipour/custgen/internal/config"
	"github.com/jmehdipour/custgen/internal/http/middleware"
	"github.com/jmehdipour/custgen/internal/service/dataset"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	e   *echo.Echo
	log *zap.Logger
}

// NewServer wires the preview routes; rds may be nil, which disables rate limiting.
func NewServer(cfg config.Config, svc *dataset.Service, rds *redis.Client, reg *prometheus.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Use(echoMid.Recover(), echoMid.RequestID())

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		DefaultRPS:     cfg.HTTP.RateLimitRPS,
		KeyPrefix:      cfg.Redis.KeyPrefix + "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	h := &previewHandler{svc: svc, gen: cfg.Generator, maxPreview: cfg.HTTP.MaxPreview}
	v1 := e.Group("/v1", rlMW)
	v1.GET("/customers", h.list)
	v1.GET("/customers/export", h.export)

	return &Server{e: e, log: logger}
}

func (s *Server) Handler() http.Handler { return s.e }

func (s *Server) Start(addr string) error {
	s.log.Info("http: listening", zap.String("addr", addr))
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
