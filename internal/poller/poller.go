package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

const defaultInterval = 5 * time.Minute

// Reloader refreshes the cached schedule for one league and date.
type Reloader interface {
	Reload(ctx context.Context, league teams.League, date string) ([]domaingames.Game, error)
}

// Poller reloads today's schedule for each league on an interval.
type Poller struct {
	reloader Reloader
	leagues  []teams.League
	loc      *time.Location
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Config controls which slots are refreshed.
type Config struct {
	Leagues  []teams.League
	Location *time.Location
	Interval time.Duration
}

// New constructs a Poller with sane defaults.
func New(reloader Reloader, cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	leagues := cfg.Leagues
	if len(leagues) == 0 {
		leagues = teams.Leagues
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Poller{
		reloader: reloader,
		leagues:  append([]teams.League(nil), leagues...),
		loc:      loc,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Warm the cache on boot.
		p.reloadOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				p.reloadOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// reloadOnce refreshes every league. An empty day is not a failure.
func (p *Poller) reloadOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)
	today := timeutil.Today(start, p.loc)

	var errs []error
	total := 0
	for _, league := range p.leagues {
		list, err := p.reloader.Reload(ctx, league, today)
		if errors.Is(err, providers.ErrEmptySchedule) {
			p.logInfo("poller found no games", logging.FieldLeague, string(league), logging.FieldDate, today)
			continue
		}
		if err != nil {
			p.logError("poller reload failed", err, logging.FieldLeague, string(league), logging.FieldDate, today)
			errs = append(errs, err)
			continue
		}
		total += len(list)
	}

	err := errors.Join(errs...)
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		p.recordFailure(err, start)
		return
	}
	p.recordSuccess(start)
	p.logInfo("poller refreshed schedules",
		logging.FieldDate, today,
		logging.FieldCount, total,
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, attrs ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(attrs, logging.Err(err))...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
