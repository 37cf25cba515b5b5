package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"jifmatch-service/internal/config"
	"jifmatch-service/internal/refdata"
	serverhttp "jifmatch-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	// reference data unavailable at startup is fatal, before any processing
	store, err := refdata.Open(cfg.ReferenceFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.ReferenceFile).Msg("load reference data")
	}
	logger.Info().
		Str("file", cfg.ReferenceFile).
		Int("entries", len(store.Snapshot().Entries)).
		Msg("reference data loaded")

	var sched *cron.Cron
	if cfg.ReferenceReloadCron != "" {
		sched = cron.New()
		_, err := sched.AddFunc(cfg.ReferenceReloadCron, func() {
			if _, err := store.Reload(); err != nil {
				logger.Error().Err(err).Msg("scheduled reference reload failed")
			}
		})
		if err != nil {
			logger.Fatal().Err(err).Str("spec", cfg.ReferenceReloadCron).Msg("bad reload cron spec")
		}
		sched.Start()
	}

	r := serverhttp.NewRouter(cfg, store, logger)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	if sched != nil {
		sched.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}
