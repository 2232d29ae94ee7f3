package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

// StubFetcher counts calls and either returns Err, delegates to Inner, or returns Raw.
// Notify, when set, is closed on the first call.
type StubFetcher struct {
	Inner  providers.ScheduleFetcher
	Raw    providers.RawSchedule
	Err    error
	Notify chan struct{}
	Calls  atomic.Int32

	notifyOnce sync.Once
}

func (f *StubFetcher) FetchSchedule(ctx context.Context, league teams.League, date string) (providers.RawSchedule, error) {
	f.Calls.Add(1)
	if f.Notify != nil {
		f.notifyOnce.Do(func() { close(f.Notify) })
	}
	if f.Err != nil {
		return providers.RawSchedule{}, f.Err
	}
	if f.Inner != nil {
		return f.Inner.FetchSchedule(ctx, league, date)
	}
	return f.Raw, nil
}
