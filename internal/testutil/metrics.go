package testutil

import (
	"context"
	"net/http"

	"github.com/preston-bernstein/lazyman-service/internal/metrics"
)

// MetricsSetupFunc matches metrics.Setup.
type MetricsSetupFunc func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error)

// StubMetricsSetup returns a setup that fails with err, or succeeds with rec, a
// placeholder /metrics handler and a no-op shutdown.
func StubMetricsSetup(rec *metrics.Recorder, err error) MetricsSetupFunc {
	return func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		if err != nil {
			return nil, nil, nil, err
		}
		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {})
		return rec, mux, func(context.Context) error { return nil }, nil
	}
}
