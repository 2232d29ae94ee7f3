package server

import (
	"log/slog"
	"strings"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/config"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

type displaySettings struct {
	favorites teams.Favorites
	location  *time.Location
	leagues   []teams.League
}

// buildDisplay resolves the configured timezone, favorites and polled leagues.
// Invalid entries are logged and skipped rather than failing startup.
func buildDisplay(cfg config.Config, reg *teams.Registry, logger *slog.Logger) displaySettings {
	loc := timeutil.LoadLocation(cfg.Display.Timezone)
	if tz := strings.TrimSpace(cfg.Display.Timezone); tz != "" && loc.String() != tz {
		logging.Warn(logger, "unknown display timezone, using UTC", slog.String("timezone", tz))
	}

	favs, err := teams.ParseFavorites(cfg.Display.FavoriteTeams, reg)
	if err != nil {
		logging.Warn(logger, "ignoring favorite teams", logging.Err(err))
		favs = teams.NewFavorites()
	}

	var leagues []teams.League
	for _, raw := range cfg.PollLeagues {
		league, err := teams.ParseLeague(raw)
		if err != nil {
			logging.Warn(logger, "ignoring poll league", slog.String("league", raw))
			continue
		}
		leagues = append(leagues, league)
	}

	return displaySettings{favorites: favs, location: loc, leagues: leagues}
}
