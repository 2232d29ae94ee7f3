package games

import (
	"errors"
	"fmt"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

// ErrLeagueMismatch is returned when home and away teams belong to different leagues.
var ErrLeagueMismatch = errors.New("home and away teams are in different leagues")

// previewTimeLayout renders a preview game's start time, e.g. "7:05 PM".
const previewTimeLayout = "3:04 PM"

// Game is one scheduled matchup. Build it with NewGame.
type Game struct {
	HomeTeam      teams.Team `json:"homeTeam"`
	AwayTeam      teams.Team `json:"awayTeam"`
	StartTime     time.Time  `json:"startTime"`
	State         GameState  `json:"state"`
	LiveStateText string     `json:"liveStateText,omitempty"`
	Feeds         []Feed     `json:"feeds"`
}

// NewGame validates that both teams share a league.
func NewGame(home, away teams.Team, start time.Time, state GameState, liveText string, feeds []Feed) (Game, error) {
	if home.League != away.League {
		return Game{}, fmt.Errorf("%w: %s vs %s", ErrLeagueMismatch, home.League, away.League)
	}
	return Game{
		HomeTeam:      home,
		AwayTeam:      away,
		StartTime:     start,
		State:         state,
		LiveStateText: liveText,
		Feeds:         feeds,
	}, nil
}

// League is the home team's league.
func (g Game) League() teams.League {
	return g.HomeTeam.League
}

// HasFavoriteTeam reports whether either side is a favorite.
func (g Game) HasFavoriteTeam(favs teams.Favorites) bool {
	return g.HomeTeam.IsFavorite(favs) || g.AwayTeam.IsFavorite(favs)
}

// Description is the short status line shown next to a game.
// Preview start times are rendered in loc (UTC when nil).
func (g Game) Description(loc *time.Location) string {
	switch g.State {
	case StateLive, StateOther:
		return g.LiveStateText
	case StatePreview:
		if loc == nil {
			loc = time.UTC
		}
		return g.StartTime.In(loc).Format(previewTimeLayout)
	case StateFinal:
		return "Final"
	case StatePostponed:
		return "Postponed"
	case StateTBD:
		return "TBD"
	default:
		return ""
	}
}

// Equal identifies a schedule slot: same away team and same start time.
func (g Game) Equal(other Game) bool {
	return g.AwayTeam.Equal(other.AwayTeam) && g.StartTime.Equal(other.StartTime)
}

// FeedByPlaybackID returns the game's feed with the given playback id.
func (g Game) FeedByPlaybackID(id int64) (Feed, bool) {
	for _, f := range g.Feeds {
		if f.PlaybackID == id {
			return f, true
		}
	}
	return Feed{}, false
}
