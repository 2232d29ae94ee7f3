package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/preston-bernstein/lazyman-service/internal/http/handlers"
	"github.com/preston-bernstein/lazyman-service/internal/http/middleware"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
)

const defaultRequestTimeout = 30 * time.Second

// RouterConfig holds the cross-cutting settings for the router.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter registers HTTP routes on a chi router.
func NewRouter(h *handlers.Handler, cfg RouterConfig) nethttp.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/cdns", h.CDNs)

	r.Route("/leagues/{league}", func(r chi.Router) {
		r.Get("/games", h.ListGames)
		r.Post("/games/reload", h.ReloadGames)
		r.Get("/teams", h.Teams)
		r.Get("/feeds/{playbackID}/streams", h.Streams)
	})
	return r
}
