package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	appgames "github.com/preston-bernstein/lazyman-service/internal/app/games"
	"github.com/preston-bernstein/lazyman-service/internal/config"
	domaingames "github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/normalize"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/providers/fixture"
	"github.com/preston-bernstein/lazyman-service/internal/providers/statsapi"
	"github.com/preston-bernstein/lazyman-service/internal/store"
	"github.com/preston-bernstein/lazyman-service/internal/streams"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

// app is the one-shot wiring the CLI runs against.
type app struct {
	registry *teams.Registry
	games    *appgames.Service
	resolver *streams.Resolver
	loc      *time.Location
	favs     teams.Favorites
	now      func() time.Time
}

func newApp(cfg config.Config, logger *slog.Logger) *app {
	reg := teams.DefaultRegistry()
	var client *http.Client
	if cfg.Upstream.HTTPTimeout > 0 {
		client = &http.Client{Timeout: cfg.Upstream.HTTPTimeout}
	}

	var fetcher providers.ScheduleFetcher
	if strings.EqualFold(cfg.Provider, config.ProviderFixture) {
		fetcher = fixture.New()
	} else {
		fetcher = statsapi.NewClient(statsapi.Config{
			NHLBaseURL: cfg.Upstream.NHLStatsURL,
			MLBBaseURL: cfg.Upstream.MLBStatsURL,
			HTTPClient: client,
		})
	}
	fetcher = providers.NewInstrumentedFetcher(fetcher, logger, nil)

	favs, err := teams.ParseFavorites(cfg.Display.FavoriteTeams, reg)
	if err != nil {
		logging.Warn(logger, "ignoring favorite teams", logging.Err(err))
		favs = teams.NewFavorites()
	}

	return &app{
		registry: reg,
		games:    appgames.NewService(store.NewScheduleCache(), fetcher, normalize.New(reg, logger), logger, nil),
		resolver: streams.NewResolver(streams.Config{
			NHLBaseURL: cfg.Upstream.NHLStreamURL,
			MLBBaseURL: cfg.Upstream.MLBStreamURL,
			HTTPClient: client,
			Logger:     logger,
		}),
		loc:  timeutil.LoadLocation(cfg.Display.Timezone),
		favs: favs,
		now:  time.Now,
	}
}

func (a *app) leagueAndDate(rawLeague, rawDate string) (teams.League, string, error) {
	league, err := teams.ParseLeague(rawLeague)
	if err != nil {
		return "", "", err
	}
	date, err := timeutil.NormalizeDate(strings.TrimSpace(rawDate), a.now(), a.loc)
	if err != nil {
		return "", "", err
	}
	return league, date, nil
}

func runGames(ctx context.Context, a *app, cmd gamesCmd, out output) error {
	league, date, err := a.leagueAndDate(cmd.League, cmd.Date)
	if err != nil {
		return err
	}
	favs := a.favs
	if cmd.Favorites != "" {
		if favs, err = teams.ParseFavorites(cmd.Favorites, a.registry); err != nil {
			return err
		}
	}
	list, err := a.games.List(ctx, league, date, favs)
	if err != nil {
		return userError(err)
	}
	return out.games(league, date, list, favs, a.loc)
}

func runStreams(ctx context.Context, a *app, cmd streamsCmd, out output) error {
	league, date, err := a.leagueAndDate(cmd.League, cmd.Date)
	if err != nil {
		return err
	}
	cdn, err := domaingames.ParseCDN(cmd.CDN)
	if err != nil {
		return err
	}
	feed, _, err := a.games.Feed(ctx, league, date, cmd.PlaybackID)
	if err != nil {
		return userError(err)
	}
	variants, err := a.resolver.Resolve(ctx, feed, cdn)
	if err != nil {
		return userError(err)
	}
	return out.streams(feed, cdn, variants)
}

type messageError string

func (e messageError) Error() string { return string(e) }

// userError swaps a failure for its user-facing message.
func userError(err error) error {
	if f, ok := providers.AsFailure(err); ok && f.Message != "" {
		return messageError(f.Message)
	}
	return err
}
