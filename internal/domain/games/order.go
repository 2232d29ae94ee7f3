package games

import (
	"sort"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

// Compare orders two games for display. Negative means a sorts before b.
//
// Games with a favorite team come first. Two live games or two preview games are
// ordered by start time; any other pair by state. Ties fall back to start time and
// then team names so distinct slots never compare equal.
func Compare(a, b Game, favs teams.Favorites) int {
	aFav, bFav := a.HasFavoriteTeam(favs), b.HasFavoriteTeam(favs)
	if aFav != bFav {
		if aFav {
			return -1
		}
		return 1
	}

	// Equal states (live/live and preview/preview included) fall through to start time.
	if a.State != b.State {
		return int(a.State) - int(b.State)
	}

	if c := a.StartTime.Compare(b.StartTime); c != 0 {
		return c
	}
	if c := a.AwayTeam.Compare(b.AwayTeam); c != 0 {
		return c
	}
	return a.HomeTeam.Compare(b.HomeTeam)
}

// Less reports whether a sorts before b.
func Less(a, b Game, favs teams.Favorites) bool {
	return Compare(a, b, favs) < 0
}

// Sort orders the slice in place. The sort is stable.
func Sort(list []Game, favs teams.Favorites) {
	sort.SliceStable(list, func(i, j int) bool {
		return Less(list[i], list[j], favs)
	})
}
