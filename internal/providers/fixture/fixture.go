package fixture

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

//go:embed data/*.json
var payloads embed.FS

// datePlaceholder is replaced with the requested date so fixture games land on that day.
var datePlaceholder = []byte("__DATE__")

// Fetcher serves embedded stats API payloads, useful for local runs without network access.
type Fetcher struct {
	now func() time.Time
}

// New creates a fixture fetcher with a time source.
func New() *Fetcher {
	return &Fetcher{
		now: time.Now,
	}
}

// FetchSchedule returns the embedded payload for the league with every game moved onto date.
// An empty date means today in UTC.
func (f *Fetcher) FetchSchedule(ctx context.Context, league teams.League, date string) (providers.RawSchedule, error) {
	if err := ctx.Err(); err != nil {
		return providers.RawSchedule{}, providers.NewFailure(providers.KindNetwork, providers.MsgScheduleNetwork, err)
	}

	date, err := timeutil.NormalizeDate(date, f.now(), time.UTC)
	if err != nil {
		return providers.RawSchedule{}, err
	}

	body, err := PayloadFor(league, date)
	if err != nil {
		return providers.RawSchedule{}, err
	}
	return providers.RawSchedule{League: league, Date: date, Body: body}, nil
}

// Payload returns the raw embedded schedule for a league with its date placeholders intact.
func Payload(league teams.League) ([]byte, error) {
	var name string
	switch league {
	case teams.LeagueNHL:
		name = "data/nhl_schedule.json"
	case teams.LeagueMLB:
		name = "data/mlb_schedule.json"
	default:
		return nil, fmt.Errorf("fixture: unsupported league %q", league)
	}
	return payloads.ReadFile(name)
}

// PayloadFor returns the embedded schedule for a league with games placed on date.
func PayloadFor(league teams.League, date string) ([]byte, error) {
	body, err := Payload(league)
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(body, datePlaceholder, []byte(date)), nil
}
