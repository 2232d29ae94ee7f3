package normalize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/providers/fixture"
	"github.com/preston-bernstein/lazyman-service/internal/testutil"
)

func fixtureSchedule(t *testing.T, league teams.League, date string) providers.RawSchedule {
	t.Helper()
	body, err := fixture.PayloadFor(league, date)
	if err != nil {
		t.Fatalf("fixture payload: %v", err)
	}
	return providers.RawSchedule{League: league, Date: date, Body: body}
}

func TestNormalizeNHLFixture(t *testing.T) {
	n := New(teams.DefaultRegistry(), nil)
	list, err := n.Normalize(context.Background(), fixtureSchedule(t, teams.LeagueNHL, "2021-03-01"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 4 games, got %d", len(list))
	}

	live := list[0]
	if live.HomeTeam.ShortName != "Bruins" || live.AwayTeam.ShortName != "Rangers" {
		t.Fatalf("unexpected teams %s vs %s", live.AwayTeam.Name(), live.HomeTeam.Name())
	}
	if live.State != games.StateLive || live.LiveStateText != "2nd – 05:23" {
		t.Fatalf("unexpected live state %s %q", live.State, live.LiveStateText)
	}
	if !live.StartTime.Equal(time.Date(2021, 3, 1, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", live.StartTime)
	}
	if len(live.Feeds) != 3 {
		t.Fatalf("expected 3 feeds, got %d", len(live.Feeds))
	}
	home := live.Feeds[0]
	if home.Title() != "Home (NESN)" || home.PlaybackID != 63290303 || home.GameDate != "2021-03-01" || home.League != teams.LeagueNHL {
		t.Fatalf("unexpected home feed %+v", home)
	}
	if !home.GameStart.Equal(live.StartTime) {
		t.Fatalf("expected feed to carry game start")
	}
	if live.Feeds[2].Title() != "NBC Sports Network" {
		t.Fatalf("expected feed name title, got %q", live.Feeds[2].Title())
	}

	if list[1].State != games.StatePreview || list[1].LiveStateText != "Scheduled" {
		t.Fatalf("unexpected preview %+v", list[1])
	}
	if list[2].State != games.StateFinal {
		t.Fatalf("expected final, got %s", list[2].State)
	}
	if list[3].State != games.StatePostponed || len(list[3].Feeds) != 0 {
		t.Fatalf("expected postponed with no feeds, got %s feeds=%d", list[3].State, len(list[3].Feeds))
	}
}

func TestNormalizeMLBFixture(t *testing.T) {
	n := New(teams.DefaultRegistry(), nil)
	list, err := n.Normalize(context.Background(), fixtureSchedule(t, teams.LeagueMLB, "2018-04-05"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 games, got %d", len(list))
	}
	live := list[0]
	if live.State != games.StateLive || live.LiveStateText != "5th – Top" {
		t.Fatalf("unexpected live %s %q", live.State, live.LiveStateText)
	}
	if live.Feeds[0].PlaybackID != 1191483 || live.Feeds[0].League != teams.LeagueMLB {
		t.Fatalf("expected numeric MLB id, got %+v", live.Feeds[0])
	}
	if list[2].State != games.StatePostponed || list[2].Description(time.UTC) != "Postponed" {
		t.Fatalf("expected postponed to beat final, got %s", list[2].State)
	}
}

func TestNormalizeDropsUnresolvableEntries(t *testing.T) {
	body := `{"totalItems": 4, "dates": [{"games": [
		{"gamePk": 1, "gameDate": "2021-03-01T23:00:00Z",
		 "status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
		 "teams": {"away": {"team": {"teamName": "Nordiques"}}, "home": {"team": {"teamName": "Bruins"}}}},
		{"gamePk": 2, "gameDate": "not a date",
		 "status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
		 "teams": {"away": {"team": {"teamName": "Sabres"}}, "home": {"team": {"teamName": "Bruins"}}}},
		{"gamePk": 3, "gameDate": "2021-03-01T19:00:00-05:00",
		 "status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
		 "teams": {"away": {"team": {"teamName": "Sabres"}}, "home": {"team": {"teamName": "Bruins"}}}},
		{"gamePk": 4, "gameDate": "2021-03-02T00:00:00Z",
		 "status": {"abstractGameState": "Preview", "detailedState": "Scheduled"},
		 "teams": {"away": {"team": {"teamName": "Rangers"}}, "home": {"team": {"teamName": "Flyers"}}},
		 "content": {"media": {"epg": [{"title": "NHLTV", "items": [
			{"mediaPlaybackId": "abc", "mediaFeedType": "HOME", "callLetters": "NBCSP"},
			{"mediaPlaybackId": "63291103", "mediaFeedType": "AWAY", "callLetters": "MSG"}
		 ]}]}}}
	]}]}`
	logger, buf := testutil.NewBufferLogger()
	n := New(teams.DefaultRegistry(), logger)

	list, err := n.Normalize(context.Background(), providers.RawSchedule{League: teams.LeagueNHL, Date: "2021-03-01", Body: []byte(body)})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 surviving games, got %d", len(list))
	}
	if !list[0].StartTime.Equal(time.Date(2021, 3, 2, 0, 0, 0, 0, time.UTC)) || list[0].StartTime.Location() != time.UTC {
		t.Fatalf("expected offset normalized to UTC, got %s", list[0].StartTime)
	}
	if len(list[0].Feeds) != 0 {
		t.Fatalf("expected empty feeds without epg")
	}
	if feeds := list[1].Feeds; len(feeds) != 1 || feeds[0].PlaybackID != 63291103 || feeds[0].Type != "Away" {
		t.Fatalf("expected only the well-formed feed kept, got %+v", feeds)
	}
	testutil.AssertLogged(t, buf, "Nordiques", "league=NHL", "dropping feed", "game_pk=4", "invalid syntax")
	if strings.Count(buf.String(), "dropping schedule entry") != 2 {
		t.Fatalf("expected two warnings, got %q", buf.String())
	}
}

func TestNormalizeEmptyAndMalformed(t *testing.T) {
	n := New(teams.DefaultRegistry(), nil)

	list, err := n.Normalize(context.Background(), providers.RawSchedule{League: teams.LeagueNHL, Body: []byte(`{"totalItems": 0, "dates": []}`)})
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v err=%v", list, err)
	}

	_, err = n.Normalize(context.Background(), providers.RawSchedule{League: teams.LeagueNHL, Body: []byte(`{"totalItems":`)})
	if !errors.Is(err, providers.ErrParse) {
		t.Fatalf("expected parse failure, got %v", err)
	}

	if _, err := n.Normalize(context.Background(), providers.RawSchedule{League: teams.League("NBA")}); err == nil {
		t.Fatalf("expected unsupported league error")
	}
}

func TestNormalizeNonLiveUsesDetailedState(t *testing.T) {
	body := `{"totalItems": 1, "dates": [{"games": [
		{"gameDate": "2018-04-05T17:05:00Z",
		 "status": {"abstractGameState": "Live", "detailedState": "Delayed Start: Rain"},
		 "teams": {"away": {"team": {"teamName": "Yankees"}}, "home": {"team": {"teamName": "Red Sox"}}},
		 "linescore": {"currentInningOrdinal": "1st", "inningHalf": "Top"}}
	]}]}`
	n := New(teams.DefaultRegistry(), nil)
	list, err := n.Normalize(context.Background(), providers.RawSchedule{League: teams.LeagueMLB, Body: []byte(body)})
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected result %v err=%v", list, err)
	}
	// "Live" abstract state still classifies as live.
	if list[0].State != games.StateLive || list[0].LiveStateText != "1st – Top" {
		t.Fatalf("unexpected %s %q", list[0].State, list[0].LiveStateText)
	}

	body = strings.Replace(body, `"abstractGameState": "Live"`, `"abstractGameState": "Warmup"`, 1)
	body = strings.Replace(body, "Delayed Start: Rain", "Warmup", 1)
	list, _ = n.Normalize(context.Background(), providers.RawSchedule{League: teams.LeagueMLB, Body: []byte(body)})
	if list[0].State != games.StateOther || list[0].Description(nil) != "Warmup" {
		t.Fatalf("expected other with detailed state text, got %s %q", list[0].State, list[0].LiveStateText)
	}
}

func TestPlaybackIDAcceptsStringsAndNumbers(t *testing.T) {
	var p playbackID
	for in, want := range map[string]int64{`123`: 123, `"456"`: 456, `""`: 0, `null`: 0} {
		if err := p.UnmarshalJSON([]byte(in)); err != nil || p.err != nil || p.value != want {
			t.Fatalf("UnmarshalJSON(%s) = %d err=%v", in, p.value, p.err)
		}
	}
	for _, in := range []string{`"abc"`, `12.5`, `true`} {
		if err := p.UnmarshalJSON([]byte(in)); err != nil {
			t.Fatalf("UnmarshalJSON(%s) must not fail the decode, got %v", in, err)
		}
		if p.err == nil || p.value != 0 {
			t.Fatalf("expected recorded error for %s", in)
		}
	}
}
