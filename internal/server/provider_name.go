package server

import (
	"strings"

	"github.com/preston-bernstein/lazyman-service/internal/config"
)

// normalizeProviderName returns a lower-cased provider name, defaulting to the stats API.
// Used across server wiring and provider factory to keep naming consistent in logs.
func normalizeProviderName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return config.ProviderStatsAPI
	}
	return name
}
