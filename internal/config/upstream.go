package config

// UpstreamConfig controls how we talk to the schedule and stream services.
// Empty base URLs select the client defaults.
type UpstreamConfig struct {
	NHLStatsURL  string
	MLBStatsURL  string
	NHLStreamURL string
	MLBStreamURL string
	HTTPTimeout  Duration
}

func loadUpstream() UpstreamConfig {
	return UpstreamConfig{
		NHLStatsURL:  envOrDefault(envNHLStatsURL, ""),
		MLBStatsURL:  envOrDefault(envMLBStatsURL, ""),
		NHLStreamURL: envOrDefault(envNHLStreamURL, ""),
		MLBStreamURL: envOrDefault(envMLBStreamURL, ""),
		HTTPTimeout:  durationEnvOrDefault(envHTTPTimeout, defaultHTTPTimeout),
	}
}
