package server

import (
	"context"
	"log/slog"
	"net/http"

	appgames "github.com/preston-bernstein/lazyman-service/internal/app/games"
	appteams "github.com/preston-bernstein/lazyman-service/internal/app/teams"
	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	httpserver "github.com/preston-bernstein/lazyman-service/internal/http"
	"github.com/preston-bernstein/lazyman-service/internal/http/handlers"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/normalize"
	"github.com/preston-bernstein/lazyman-service/internal/poller"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/store"
	"github.com/preston-bernstein/lazyman-service/internal/streams"
)

var metricsSetup = metrics.Setup

// Poller is the background reload loop as the server drives it.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	cache         *store.ScheduleCache
	gamesService  *appgames.Service
	teamsService  *appteams.Service
	resolver      *streams.Resolver
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithFetcher(cfg, logger, nil)
}

func newServerWithFetcher(cfg config.Config, logger *slog.Logger, fetcher providers.ScheduleFetcher) *Server {
	return newServerWithMetrics(cfg, logger, fetcher, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, fetcher providers.ScheduleFetcher, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if fetcher == nil {
		fetcher = factory.build(cfg)
	} else {
		fetcher = factory.wrap(fetcher)
	}

	reg := teams.DefaultRegistry()
	display := buildDisplay(cfg, reg, logger)
	cache, gameSvc, teamSvc := buildServices(reg, fetcher, logger, recorder)
	resolver := streams.NewResolver(streams.Config{
		NHLBaseURL: cfg.Upstream.NHLStreamURL,
		MLBBaseURL: cfg.Upstream.MLBStreamURL,
		HTTPClient: upstreamHTTPClient(cfg),
		Logger:     logger,
		Metrics:    recorder,
	})
	plr := poller.New(gameSvc, poller.Config{
		Leagues:  display.leagues,
		Location: display.location,
		Interval: cfg.PollInterval,
	}, logger, recorder)
	httpSrv := buildHTTPServer(cfg, gameSvc, teamSvc, resolver, reg, display, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		cache:         cache,
		gamesService:  gameSvc,
		teamsService:  teamSvc,
		resolver:      resolver,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(reg *teams.Registry, fetcher providers.ScheduleFetcher, logger *slog.Logger, recorder *metrics.Recorder) (*store.ScheduleCache, *appgames.Service, *appteams.Service) {
	cache := store.NewScheduleCache()
	gameSvc := appgames.NewService(cache, fetcher, normalize.New(reg, logger), logger, recorder)
	return cache, gameSvc, appteams.NewService(reg)
}

func buildHTTPServer(cfg config.Config, gameSvc *appgames.Service, teamSvc *appteams.Service, resolver *streams.Resolver, reg *teams.Registry, display displaySettings, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(gameSvc, teamSvc, resolver, handlers.Options{
		Registry:  reg,
		Favorites: display.favorites,
		Location:  display.location,
	}, logger, statusFn)
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		Logger:         logger,
		Metrics:        recorder,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: requestTimeout,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", logging.Err(err))
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", logging.Err(err))
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", logging.Err(err))
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", logging.Err(err))
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", logging.Err(err))
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              cfg.Metrics.Addr(),
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", logging.Err(err))
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
