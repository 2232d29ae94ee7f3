package testutil

import (
	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/store"
)

// NewCacheWithGames builds a schedule cache with one preloaded slot.
func NewCacheWithGames(league teams.League, date string, g []games.Game) *store.ScheduleCache {
	c := store.NewScheduleCache()
	c.Set(league, date, g)
	return c
}
