package streams

import "time"

const (
	defaultNHLBaseURL  = "http://nhl.freegamez.ga/m3u8"
	defaultMLBBaseURL  = "http://nhl.freegamez.ga/mlb/m3u8"
	defaultHTTPTimeout = 10 * time.Second

	// expiryGrace is added to a master URL's exp= timestamp before it counts as expired.
	expiryGrace = 1000 * time.Second

	qualityUnknown   = "Unknown"
	maxRedirectBytes = 4 << 10
	maxManifestBytes = 1 << 20
)
