package server

import (
	"log/slog"

	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

// providerFactory assembles the schedule fetcher with the shared instrumentation wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.ScheduleFetcher {
	if f.logger != nil {
		f.logger.Info("schedule provider selected", slog.String("provider", normalizeProviderName(cfg.Provider)))
	}
	return f.wrap(selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(base providers.ScheduleFetcher) providers.ScheduleFetcher {
	return providers.NewInstrumentedFetcher(base, f.logger, f.metrics)
}
