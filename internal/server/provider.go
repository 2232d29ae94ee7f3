package server

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/providers/fixture"
	"github.com/preston-bernstein/lazyman-service/internal/providers/statsapi"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ScheduleFetcher {
	switch normalizeProviderName(cfg.Provider) {
	case config.ProviderFixture:
		return fixture.New()
	case config.ProviderStatsAPI:
		return statsapi.NewClient(statsapi.Config{
			NHLBaseURL: cfg.Upstream.NHLStatsURL,
			MLBBaseURL: cfg.Upstream.MLBStatsURL,
			HTTPClient: upstreamHTTPClient(cfg),
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// upstreamHTTPClient returns nil when no timeout is configured so clients apply their own default.
func upstreamHTTPClient(cfg config.Config) *http.Client {
	if cfg.Upstream.HTTPTimeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: cfg.Upstream.HTTPTimeout}
}
