package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/s3sync/s3sync/internal/config"
	"github.com/s3sync/s3sync/internal/handlers"
	"github.com/s3sync/s3sync/internal/logging"
	customMiddleware "github.com/s3sync/s3sync/internal/middleware"
	"github.com/s3sync/s3sync/internal/store"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fallback := logging.Configure("info", "json")
		fallback.Fatal().Err(err).Msg("configuration failed")
	}
	log := logging.Configure(cfg.Log.Level, cfg.Log.Format)

	st, err := store.NewMinioStore(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Msg("object store setup failed")
	}

	e := newServer(st, st, cfg, log)

	log.Info().Str("listen", cfg.Server.Listen).Str("bucket", cfg.Store.Bucket).Msg("server starting")
	if err := e.Start(cfg.Server.Listen); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newServer(st store.ObjectStore, usage store.UsageReader, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	objectsHandler := handlers.NewObjectsHandler(st, log)
	transferHandler := handlers.NewTransferHandler(st, cfg.Server.PresignTTL, log)
	bundleHandler := handlers.NewBundleHandler(st, log)
	statusHandler := handlers.NewStatusHandler(usage, log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(customMiddleware.SecurityHeaders())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/api/objects", objectsHandler.ListObjects)
	e.GET("/api/transfer-authorization", transferHandler.Authorize)
	e.POST("/api/bundle", bundleHandler.Bundle)
	e.GET("/api/status", statusHandler.GetStatus)

	e.Server.ReadHeaderTimeout = 10 * time.Second
	return e
}
