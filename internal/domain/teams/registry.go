package teams

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps each league's upstream team names to canonical teams.
type Registry struct {
	byName map[League]map[string]Team
	byAbbr map[League]map[string]Team
}

// NewRegistry builds a registry from the given teams. Duplicate short names within a league are rejected.
func NewRegistry(items []Team) (*Registry, error) {
	r := &Registry{
		byName: make(map[League]map[string]Team),
		byAbbr: make(map[League]map[string]Team),
	}
	for _, t := range items {
		if t.ShortName == "" || t.League == "" {
			return nil, fmt.Errorf("team %q: short name and league required", t.Name())
		}
		if r.byName[t.League] == nil {
			r.byName[t.League] = make(map[string]Team)
			r.byAbbr[t.League] = make(map[string]Team)
		}
		if _, dup := r.byName[t.League][t.ShortName]; dup {
			return nil, fmt.Errorf("duplicate %s team %q", t.League, t.ShortName)
		}
		r.byName[t.League][t.ShortName] = t
		r.byAbbr[t.League][strings.ToUpper(t.Abbreviation)] = t
	}
	return r, nil
}

// DefaultRegistry returns the built-in NHL and MLB tables.
func DefaultRegistry() *Registry {
	all := make([]Team, 0, len(nhlTeams)+len(mlbTeams))
	all = append(all, nhlTeams...)
	all = append(all, mlbTeams...)
	r, err := NewRegistry(all)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup finds a team by the upstream short name ("Bruins", "Red Sox").
func (r *Registry) Lookup(league League, shortName string) (Team, bool) {
	if r == nil {
		return Team{}, false
	}
	t, ok := r.byName[league][strings.TrimSpace(shortName)]
	return t, ok
}

// ByAbbreviation finds a team by its abbreviation, case-insensitively.
func (r *Registry) ByAbbreviation(league League, abbr string) (Team, bool) {
	if r == nil {
		return Team{}, false
	}
	t, ok := r.byAbbr[league][strings.ToUpper(strings.TrimSpace(abbr))]
	return t, ok
}

// Teams returns a league's teams sorted by name.
func (r *Registry) Teams(league League) []Team {
	if r == nil {
		return nil
	}
	out := make([]Team, 0, len(r.byName[league]))
	for _, t := range r.byName[league] {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

func nhl(location, shortName, abbr string) Team {
	return Team{Location: location, ShortName: shortName, Abbreviation: abbr, LogoRef: "nhl/" + abbr, League: LeagueNHL}
}

func mlb(location, shortName, abbr string) Team {
	return Team{Location: location, ShortName: shortName, Abbreviation: abbr, LogoRef: "mlb/" + abbr, League: LeagueMLB}
}

var nhlTeams = []Team{
	nhl("Anaheim", "Ducks", "ANA"),
	nhl("Arizona", "Coyotes", "ARI"),
	nhl("Boston", "Bruins", "BOS"),
	nhl("Buffalo", "Sabres", "BUF"),
	nhl("Calgary", "Flames", "CGY"),
	nhl("Carolina", "Hurricanes", "CAR"),
	nhl("Chicago", "Blackhawks", "CHI"),
	nhl("Colorado", "Avalanche", "COL"),
	nhl("Columbus", "Blue Jackets", "CBJ"),
	nhl("Dallas", "Stars", "DAL"),
	nhl("Detroit", "Red Wings", "DET"),
	nhl("Edmonton", "Oilers", "EDM"),
	nhl("Florida", "Panthers", "FLA"),
	nhl("Los Angeles", "Kings", "LAK"),
	nhl("Minnesota", "Wild", "MIN"),
	nhl("Montreal", "Canadiens", "MTL"),
	nhl("Nashville", "Predators", "NSH"),
	nhl("New Jersey", "Devils", "NJD"),
	nhl("New York", "Islanders", "NYI"),
	nhl("New York", "Rangers", "NYR"),
	nhl("Ottawa", "Senators", "OTT"),
	nhl("Philadelphia", "Flyers", "PHI"),
	nhl("Pittsburgh", "Penguins", "PIT"),
	nhl("San Jose", "Sharks", "SJS"),
	nhl("Seattle", "Kraken", "SEA"),
	nhl("St. Louis", "Blues", "STL"),
	nhl("Tampa Bay", "Lightning", "TBL"),
	nhl("Toronto", "Maple Leafs", "TOR"),
	nhl("Vancouver", "Canucks", "VAN"),
	nhl("Vegas", "Golden Knights", "VGK"),
	nhl("Washington", "Capitals", "WSH"),
	nhl("Winnipeg", "Jets", "WPG"),
}

var mlbTeams = []Team{
	mlb("Arizona", "D-backs", "ARI"),
	mlb("Atlanta", "Braves", "ATL"),
	mlb("Baltimore", "Orioles", "BAL"),
	mlb("Boston", "Red Sox", "BOS"),
	mlb("Chicago", "Cubs", "CHC"),
	mlb("Chicago", "White Sox", "CWS"),
	mlb("Cincinnati", "Reds", "CIN"),
	mlb("Cleveland", "Indians", "CLE"),
	mlb("Colorado", "Rockies", "COL"),
	mlb("Detroit", "Tigers", "DET"),
	mlb("Houston", "Astros", "HOU"),
	mlb("Kansas City", "Royals", "KC"),
	mlb("Los Angeles", "Angels", "LAA"),
	mlb("Los Angeles", "Dodgers", "LAD"),
	mlb("Miami", "Marlins", "MIA"),
	mlb("Milwaukee", "Brewers", "MIL"),
	mlb("Minnesota", "Twins", "MIN"),
	mlb("New York", "Mets", "NYM"),
	mlb("New York", "Yankees", "NYY"),
	mlb("Oakland", "Athletics", "OAK"),
	mlb("Philadelphia", "Phillies", "PHI"),
	mlb("Pittsburgh", "Pirates", "PIT"),
	mlb("San Diego", "Padres", "SD"),
	mlb("San Francisco", "Giants", "SF"),
	mlb("Seattle", "Mariners", "SEA"),
	mlb("St. Louis", "Cardinals", "STL"),
	mlb("Tampa Bay", "Rays", "TB"),
	mlb("Texas", "Rangers", "TEX"),
	mlb("Toronto", "Blue Jays", "TOR"),
	mlb("Washington", "Nationals", "WSH"),
}
