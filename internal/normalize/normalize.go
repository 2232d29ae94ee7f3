package normalize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

// liveSeparator joins the two halves of a live status line, e.g. "2nd – 05:23".
const liveSeparator = " – "

// Normalizer turns raw stats API schedules into domain games.
type Normalizer struct {
	registry *teams.Registry
	logger   *slog.Logger
}

// New creates a Normalizer resolving team names through reg.
func New(reg *teams.Registry, logger *slog.Logger) *Normalizer {
	return &Normalizer{registry: reg, logger: logger}
}

// leagueRules holds what differs between leagues when reading a game entry.
type leagueRules struct {
	liveText   func(linescore) string
	playbackID func(epgItem) playbackID
}

var rulesByLeague = map[teams.League]leagueRules{
	teams.LeagueNHL: {
		liveText: func(ls linescore) string {
			return ls.CurrentPeriodOrdinal + liveSeparator + ls.CurrentPeriodTimeRemaining
		},
		playbackID: func(item epgItem) playbackID { return item.MediaPlaybackID },
	},
	teams.LeagueMLB: {
		liveText: func(ls linescore) string {
			return ls.CurrentInningOrdinal + liveSeparator + ls.InningHalf
		},
		playbackID: func(item epgItem) playbackID { return item.ID },
	},
}

// Normalize decodes a schedule payload. A schedule with no games yields an empty slice.
// Entries with unknown teams or unparsable start times are logged and skipped.
func (n *Normalizer) Normalize(ctx context.Context, raw providers.RawSchedule) ([]games.Game, error) {
	rules, ok := rulesByLeague[raw.League]
	if !ok {
		return nil, fmt.Errorf("normalize: unsupported league %q", raw.League)
	}

	var payload scheduleResponse
	if err := json.Unmarshal(raw.Body, &payload); err != nil {
		return nil, providers.NewFailure(providers.KindParse, providers.MsgScheduleMalformed, err)
	}

	out := make([]games.Game, 0)
	if payload.TotalItems == 0 || len(payload.Dates) == 0 {
		return out, nil
	}

	logger := logging.FromContext(ctx, n.logger)
	for _, entry := range payload.Dates[0].Games {
		game, err := n.normalizeGame(logger, raw.League, raw.Date, rules, entry)
		if err != nil {
			logging.Warn(logger, "dropping schedule entry",
				logging.FieldLeague, raw.League,
				logging.FieldDate, raw.Date,
				"game_pk", entry.GamePk,
				logging.Err(err),
			)
			continue
		}
		out = append(out, game)
	}
	return out, nil
}

func (n *Normalizer) normalizeGame(logger *slog.Logger, league teams.League, date string, rules leagueRules, entry scheduleGame) (games.Game, error) {
	home, err := n.resolveTeam(league, entry.Teams.Home.Team.TeamName)
	if err != nil {
		return games.Game{}, err
	}
	away, err := n.resolveTeam(league, entry.Teams.Away.Team.TeamName)
	if err != nil {
		return games.Game{}, err
	}

	start, err := time.Parse(time.RFC3339, entry.GameDate)
	if err != nil {
		return games.Game{}, fmt.Errorf("game date %q: %w", entry.GameDate, err)
	}
	start = start.UTC()

	status := entry.Status
	state := games.ClassifyState(status.AbstractGameState, status.DetailedState, status.StartTimeTBD)
	liveText := status.DetailedState
	if state == games.StateLive {
		liveText = rules.liveText(entry.Linescore)
	}

	return games.NewGame(home, away, start, state, liveText, n.feeds(logger, league, date, start, rules, entry))
}

func (n *Normalizer) resolveTeam(league teams.League, name string) (teams.Team, error) {
	team, ok := n.registry.Lookup(league, name)
	if !ok {
		return teams.Team{}, providers.NewFailure(providers.KindUnresolvedTeam, fmt.Sprintf("unknown %s team %q", league, name), nil)
	}
	return team, nil
}

func (n *Normalizer) feeds(logger *slog.Logger, league teams.League, date string, start time.Time, rules leagueRules, entry scheduleGame) []games.Feed {
	content := entry.Content
	if len(content.Media.Epg) == 0 {
		return []games.Feed{}
	}
	items := content.Media.Epg[0].Items
	feeds := make([]games.Feed, 0, len(items))
	for _, item := range items {
		id := rules.playbackID(item)
		if id.err != nil {
			logging.Warn(logger, "dropping feed",
				logging.FieldLeague, league,
				logging.FieldDate, date,
				"game_pk", entry.GamePk,
				logging.Err(id.err),
			)
			continue
		}
		feeds = append(feeds, games.Feed{
			Type:        games.FeedTypeFromCode(item.MediaFeedType),
			CallLetters: item.CallLetters,
			Name:        item.FeedName,
			PlaybackID:  id.value,
			League:      league,
			GameDate:    date,
			GameStart:   start,
		})
	}
	return feeds
}
