package teams

import (
	"fmt"
	"sort"
	"strings"
)

// Favorites is the user's favorite-team preference, keyed by league and abbreviation.
// The zero value holds no favorites.
type Favorites struct {
	set map[string]struct{}
}

// NewFavorites builds a Favorites value from the given teams.
func NewFavorites(items ...Team) Favorites {
	f := Favorites{set: make(map[string]struct{}, len(items))}
	for _, t := range items {
		f.set[favoriteKey(t.League, t.Abbreviation)] = struct{}{}
	}
	return f
}

// ParseFavorites parses "NHL:BOS,MLB:NYY" against the registry. Unknown entries are rejected.
func ParseFavorites(raw string, reg *Registry) (Favorites, error) {
	var picked []Team
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		leagueRaw, abbr, ok := strings.Cut(part, ":")
		if !ok {
			return Favorites{}, fmt.Errorf("favorite %q: expected LEAGUE:ABBR", part)
		}
		league, err := ParseLeague(leagueRaw)
		if err != nil {
			return Favorites{}, fmt.Errorf("favorite %q: %w", part, err)
		}
		team, ok := reg.ByAbbreviation(league, abbr)
		if !ok {
			return Favorites{}, fmt.Errorf("favorite %q: unknown team", part)
		}
		picked = append(picked, team)
	}
	return NewFavorites(picked...), nil
}

// Contains reports whether the team is a favorite.
func (f Favorites) Contains(t Team) bool {
	if len(f.set) == 0 {
		return false
	}
	_, ok := f.set[favoriteKey(t.League, t.Abbreviation)]
	return ok
}

// Len returns the number of favorite teams.
func (f Favorites) Len() int { return len(f.set) }

// String renders favorites in the same form ParseFavorites accepts.
func (f Favorites) String() string {
	keys := make([]string, 0, len(f.set))
	for k := range f.set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

func favoriteKey(league League, abbr string) string {
	return string(league) + ":" + strings.ToUpper(abbr)
}
