package store

import (
	"sort"
	"sync"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
)

// ScheduleKey identifies one cached schedule slot.
type ScheduleKey struct {
	League teams.League
	Date   string
}

// ScheduleCache keeps normalized schedules in memory, keyed by league and date.
// Slots are replaced wholesale and never expire.
type ScheduleCache struct {
	mu        sync.RWMutex
	schedules map[ScheduleKey][]games.Game
}

// NewScheduleCache constructs an empty ScheduleCache.
func NewScheduleCache() *ScheduleCache {
	return &ScheduleCache{
		schedules: make(map[ScheduleKey][]games.Game),
	}
}

// Get returns a copy of the cached schedule. A cached empty day reports ok=true.
func (c *ScheduleCache) Get(league teams.League, date string) ([]games.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	list, ok := c.schedules[ScheduleKey{League: league, Date: date}]
	if !ok {
		return nil, false
	}
	out := make([]games.Game, len(list))
	copy(out, list)
	return out, true
}

// Set replaces the slot with a new snapshot.
func (c *ScheduleCache) Set(league teams.League, date string, list []games.Game) {
	snapshot := make([]games.Game, len(list))
	copy(snapshot, list)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.schedules[ScheduleKey{League: league, Date: date}] = snapshot
}

// Keys lists cached slots ordered by league then date.
func (c *ScheduleCache) Keys() []ScheduleKey {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]ScheduleKey, 0, len(c.schedules))
	for k := range c.schedules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].League != keys[j].League {
			return keys[i].League < keys[j].League
		}
		return keys[i].Date < keys[j].Date
	})
	return keys
}
