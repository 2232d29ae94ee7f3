package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
)

type instrumentedFetcher struct {
	inner   ScheduleFetcher
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewInstrumentedFetcher wraps a fetcher with per-call logging and upstream metrics.
// It never retries: each call reaches the upstream exactly once.
func NewInstrumentedFetcher(inner ScheduleFetcher, logger *slog.Logger, rec *metrics.Recorder) ScheduleFetcher {
	return &instrumentedFetcher{
		inner:   inner,
		logger:  logger,
		metrics: rec,
		now:     time.Now,
	}
}

func (f *instrumentedFetcher) FetchSchedule(ctx context.Context, league teams.League, date string) (RawSchedule, error) {
	source := ScheduleSource(league)
	start := f.now()
	raw, err := f.inner.FetchSchedule(ctx, league, date)
	elapsed := f.now().Sub(start)

	// An empty day is an answer, not an upstream error.
	var recordErr error
	if err != nil && !errors.Is(err, ErrEmptySchedule) {
		recordErr = err
	}
	f.metrics.RecordUpstreamAttempt(source, elapsed, recordErr)

	attrs := []any{
		logging.FieldLeague, league,
		logging.FieldDate, date,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	}
	switch {
	case err == nil:
		logWithSource(ctx, f.logger, slog.LevelDebug, source, "schedule fetched", append(attrs, logging.FieldCount, len(raw.Body))...)
	case recordErr == nil:
		logWithSource(ctx, f.logger, slog.LevelInfo, source, "schedule empty", attrs...)
	default:
		logWithSource(ctx, f.logger, slog.LevelWarn, source, "schedule fetch failed", append(attrs, logging.Err(err))...)
	}
	return raw, err
}

// ScheduleSource names the upstream schedule source for a league in logs and metrics.
func ScheduleSource(league teams.League) string {
	switch league {
	case teams.LeagueMLB:
		return metrics.SourceScheduleMLB
	default:
		return metrics.SourceScheduleNHL
	}
}
