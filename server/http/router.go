package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"jifmatch-service/internal/config"
	matchHnd "jifmatch-service/internal/match/handler"
	"jifmatch-service/internal/middleware"
	"jifmatch-service/internal/refdata"
	"jifmatch-service/server/http/handlers"
)

func NewRouter(cfg config.Config, store *refdata.Store, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/match", matchHnd.Match(cfg, store, logger))
	r.Post("/match/download", matchHnd.Download(cfg, store, logger))

	r.Get("/reference", matchHnd.ReferenceInfo(store))
	r.Post("/reference/reload", matchHnd.ReferenceReload(store, logger))

	return r
}
