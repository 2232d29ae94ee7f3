package config

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	PollLeagues  []string
	Provider     string
	Upstream     UpstreamConfig
	Display      DisplayConfig
	CORSOrigins  []string
	Log          LogConfig
	Metrics      MetricsConfig
}

// DisplayConfig controls how schedules are presented.
type DisplayConfig struct {
	// Timezone is an IANA name used for "today" and preview start times.
	Timezone string
	// FavoriteTeams is a "NHL:BOS,MLB:NYY" list.
	FavoriteTeams string
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		PollLeagues:  listEnvOrDefault(envPollLeagues, defaultPollLeagues),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Upstream:     loadUpstream(),
		Display: DisplayConfig{
			Timezone:      envOrDefault(envTimezone, ""),
			FavoriteTeams: envOrDefault(envFavoriteTeams, ""),
		},
		CORSOrigins: listEnvOrDefault(envCORSOrigins, "*"),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
		Metrics: loadMetrics(),
	}
}

// Addr is the API server listen address.
func (c Config) Addr() string {
	return listenAddr(c.Port)
}
