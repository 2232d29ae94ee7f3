package games

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	domaingames "github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/store"
)

// ErrFeedNotFound is returned when a playback id is not part of the day's schedule.
var ErrFeedNotFound = errors.New("feed not found")

// Store defines the contract for caching schedules per league and date.
type Store interface {
	Get(league teams.League, date string) ([]domaingames.Game, bool)
	Set(league teams.League, date string, list []domaingames.Game)
	Keys() []store.ScheduleKey
}

// Normalizer turns a raw schedule payload into games.
type Normalizer interface {
	Normalize(ctx context.Context, raw providers.RawSchedule) ([]domaingames.Game, error)
}

// Service coordinates schedule lookups, reloads and feed lookups.
type Service struct {
	store      Store
	fetcher    providers.ScheduleFetcher
	normalizer Normalizer
	logger     *slog.Logger
	metrics    *metrics.Recorder

	reloads singleflight.Group
}

// NewService constructs a Service over the given cache, fetcher and normalizer.
func NewService(store Store, fetcher providers.ScheduleFetcher, normalizer Normalizer, logger *slog.Logger, rec *metrics.Recorder) *Service {
	return &Service{
		store:      store,
		fetcher:    fetcher,
		normalizer: normalizer,
		logger:     logger,
		metrics:    rec,
	}
}

// Lookup returns the cached schedule without touching the network.
func (s *Service) Lookup(league teams.League, date string) ([]domaingames.Game, bool) {
	return s.store.Get(league, date)
}

// Slots lists the league and date slots currently cached.
func (s *Service) Slots() []store.ScheduleKey {
	return s.store.Keys()
}

// Reload fetches and normalizes the schedule, then replaces the cached slot.
// Concurrent reloads of the same slot share one fetch. On failure the cache is left as it was.
func (s *Service) Reload(ctx context.Context, league teams.League, date string) ([]domaingames.Game, error) {
	// The shared reload must not die with whichever caller started it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.reloads.DoChan(string(league)+"/"+date, func() (any, error) {
		raw, err := s.fetcher.FetchSchedule(fetchCtx, league, date)
		if err != nil {
			return nil, err
		}
		list, err := s.normalizer.Normalize(fetchCtx, raw)
		if err != nil {
			return nil, err
		}
		s.store.Set(league, date, list)
		return list, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("reload %s %s: %w", league, date, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("reload %s %s: %w", league, date, res.Err)
	}

	list := res.Val.([]domaingames.Game)
	logging.Info(logging.FromContext(ctx, s.logger), "schedule reloaded",
		logging.FieldLeague, league,
		logging.FieldDate, date,
		logging.FieldCount, len(list),
		"shared", res.Shared,
	)
	out := make([]domaingames.Game, len(list))
	copy(out, list)
	return out, nil
}

// List returns the day's games in display order, loading the schedule on a cache miss.
func (s *Service) List(ctx context.Context, league teams.League, date string, favs teams.Favorites) ([]domaingames.Game, error) {
	list, err := s.load(ctx, league, date)
	if err != nil {
		return nil, err
	}
	domaingames.Sort(list, favs)
	return list, nil
}

// Feed finds a feed by playback id in the day's schedule and returns it with its game.
func (s *Service) Feed(ctx context.Context, league teams.League, date string, playbackID int64) (domaingames.Feed, domaingames.Game, error) {
	list, err := s.load(ctx, league, date)
	if err != nil {
		return domaingames.Feed{}, domaingames.Game{}, err
	}
	for _, g := range list {
		if feed, ok := g.FeedByPlaybackID(playbackID); ok {
			return feed, g, nil
		}
	}
	return domaingames.Feed{}, domaingames.Game{}, fmt.Errorf("%w: %s %s %d", ErrFeedNotFound, league, date, playbackID)
}

func (s *Service) load(ctx context.Context, league teams.League, date string) ([]domaingames.Game, error) {
	if list, ok := s.store.Get(league, date); ok {
		s.metrics.RecordCacheHit(metrics.CacheSchedule)
		return list, nil
	}
	return s.Reload(ctx, league, date)
}
