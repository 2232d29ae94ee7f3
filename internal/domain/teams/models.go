package teams

import (
	"fmt"
	"strings"
)

// League discriminates the upstream API, date handling and team table.
type League string

const (
	LeagueNHL League = "NHL"
	LeagueMLB League = "MLB"
)

// Leagues lists every supported league in display order.
var Leagues = []League{LeagueNHL, LeagueMLB}

// ParseLeague resolves a case-insensitive league code.
func ParseLeague(raw string) (League, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(LeagueNHL):
		return LeagueNHL, nil
	case string(LeagueMLB):
		return LeagueMLB, nil
	default:
		return "", fmt.Errorf("unknown league %q", raw)
	}
}

func (l League) String() string { return string(l) }

// Team is the canonical team shape. One instance exists per real-world team inside a Registry.
type Team struct {
	Location     string `json:"location"`
	ShortName    string `json:"shortName"`
	Abbreviation string `json:"abbreviation"`
	LogoRef      string `json:"logoRef"`
	League       League `json:"league"`
}

// Name is the full display name, e.g. "Boston Bruins".
func (t Team) Name() string {
	return t.Location + " " + t.ShortName
}

// IsFavorite reports whether the team is in the user's favorites.
func (t Team) IsFavorite(favs Favorites) bool {
	return favs.Contains(t)
}

// Equal compares teams by full name.
func (t Team) Equal(other Team) bool {
	return t.Name() == other.Name()
}

// Compare orders teams by full name.
func (t Team) Compare(other Team) int {
	return strings.Compare(t.Name(), other.Name())
}
