package config

import "strings"

// MetricsConfig controls the Prometheus scrape server and optional OTLP push export.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

// Addr is the scrape server listen address.
func (m MetricsConfig) Addr() string {
	return listenAddr(m.Port)
}

func loadMetrics() MetricsConfig {
	return MetricsConfig{
		Enabled:      boolEnvOrDefault(envMetricsOn, true),
		Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
		OtlpEndpoint: strings.TrimSuffix(strings.TrimSpace(envOrDefault(envOtelEndpoint, "")), "/"),
		ServiceName:  envOrDefault(envOtelService, defaultServiceName),
		OtlpInsecure: boolEnvOrDefault(envOtelInsecure, true),
	}
}

// listenAddr accepts a bare port ("4000") or a host:port.
func listenAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
