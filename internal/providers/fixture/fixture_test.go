package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

func TestFetchScheduleMovesGamesOntoDate(t *testing.T) {
	f := New()
	raw, err := f.FetchSchedule(context.Background(), teams.LeagueNHL, "2021-03-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw.Date != "2021-03-01" || raw.League != teams.LeagueNHL {
		t.Fatalf("unexpected raw %+v", raw)
	}
	if bytes.Contains(raw.Body, datePlaceholder) {
		t.Fatalf("expected placeholders replaced")
	}
	if !bytes.Contains(raw.Body, []byte(`"gameDate": "2021-03-01T23:00:00Z"`)) {
		t.Fatalf("expected game on requested date")
	}
	if !json.Valid(raw.Body) {
		t.Fatalf("expected valid json")
	}
}

func TestFetchScheduleDefaultsToToday(t *testing.T) {
	f := New()
	f.now = func() time.Time { return time.Date(2018, 4, 5, 12, 0, 0, 0, time.UTC) }
	raw, err := f.FetchSchedule(context.Background(), teams.LeagueMLB, "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw.Date != "2018-04-05" {
		t.Fatalf("expected today, got %s", raw.Date)
	}
}

func TestFetchScheduleErrors(t *testing.T) {
	f := New()
	if _, err := f.FetchSchedule(context.Background(), teams.League("NBA"), "2021-03-01"); err == nil {
		t.Fatalf("expected unsupported league error")
	}
	if _, err := f.FetchSchedule(context.Background(), teams.LeagueNHL, "nope"); err == nil {
		t.Fatalf("expected invalid date error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.FetchSchedule(ctx, teams.LeagueNHL, "2021-03-01"); err == nil {
		t.Fatalf("expected cancelled context error")
	}
}
