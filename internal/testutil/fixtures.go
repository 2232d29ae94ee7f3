package testutil

import (
	"fmt"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

var registry = teams.DefaultRegistry()

// MustTeam looks a team up in the default registry or panics; intended for tests.
func MustTeam(league teams.League, shortName string) teams.Team {
	t, ok := registry.Lookup(league, shortName)
	if !ok {
		panic(fmt.Sprintf("testutil: unknown %s team %q", league, shortName))
	}
	return t
}

// SampleGame returns an NHL game between two registry teams with one home feed.
func SampleGame(away, home string, state games.GameState, start time.Time) games.Game {
	g, err := games.NewGame(MustTeam(teams.LeagueNHL, home), MustTeam(teams.LeagueNHL, away), start, state, "", nil)
	if err != nil {
		panic(err)
	}
	g.Feeds = []games.Feed{SampleFeed(teams.LeagueNHL, start, 1000+start.Unix()%1000)}
	return g
}

// SampleFeed returns a home feed for the given league and start time.
func SampleFeed(league teams.League, start time.Time, playbackID int64) games.Feed {
	return games.Feed{
		Type:        "Home",
		CallLetters: "TEST",
		PlaybackID:  playbackID,
		League:      league,
		GameDate:    start.UTC().Format("2006-01-02"),
		GameStart:   start,
	}
}
