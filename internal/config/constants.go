package config

import "time"

const (
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envPollLeagues  = "POLL_LEAGUES"
	envProvider     = "PROVIDER"
	envNHLStatsURL  = "NHL_STATS_URL"
	envMLBStatsURL  = "MLB_STATS_URL"
	envNHLStreamURL = "NHL_STREAM_URL"
	envMLBStreamURL = "MLB_STREAM_URL"
	envHTTPTimeout  = "HTTP_TIMEOUT"
	envTimezone     = "DISPLAY_TIMEZONE"
	envFavoriteTeams = "FAVORITE_TEAMS"
	envCORSOrigins  = "CORS_ORIGINS"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"

	defaultPort = "4000"
	// Schedules change slowly; live game state is the only reason to poll at all.
	defaultPollInterval = 5 * Duration(time.Minute)
	defaultPollLeagues  = "NHL,MLB"
	defaultProvider     = "statsapi"
	defaultHTTPTimeout  = 10 * Duration(time.Second)
	defaultMetricsPort  = "9090"
	defaultServiceName  = "lazyman-service"
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"

	// ProviderStatsAPI fetches live schedules from the league stats APIs.
	ProviderStatsAPI = "statsapi"
	// ProviderFixture serves the embedded sample schedules.
	ProviderFixture = "fixture"
)
