package providers

import (
	"context"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

// RawSchedule is an undecoded schedule payload for one league and calendar date.
type RawSchedule struct {
	League teams.League
	Date   string
	Body   []byte
}

// ScheduleFetcher retrieves a league's schedule for a YYYY-MM-DD date.
// Implementations return a *Failure of kind network, parse or empty_schedule on error.
type ScheduleFetcher interface {
	FetchSchedule(ctx context.Context, league teams.League, date string) (RawSchedule, error)
}

// FetcherFunc adapts a function to ScheduleFetcher.
type FetcherFunc func(ctx context.Context, league teams.League, date string) (RawSchedule, error)

func (f FetcherFunc) FetchSchedule(ctx context.Context, league teams.League, date string) (RawSchedule, error) {
	return f(ctx, league, date)
}
