package server

import "time"

const (
	readTimeout = 10 * time.Second
	// Stream resolution makes two sequential upstream calls per request.
	writeTimeout   = 45 * time.Second
	idleTimeout    = 60 * time.Second
	requestTimeout = 40 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
