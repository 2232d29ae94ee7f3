package streams

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

// Config controls where the resolver finds redirect endpoints and how it reports.
type Config struct {
	NHLBaseURL string
	MLBBaseURL string
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

type resolution struct {
	cdn      games.CDN
	variants []games.StreamVariant
}

// Resolver turns a feed and CDN into a ranked list of playable stream variants.
// Each feed remembers the result for the last CDN it was resolved with; concurrent
// first-time resolutions of the same feed and CDN share one upstream fetch.
type Resolver struct {
	nhlBaseURL string
	mlbBaseURL string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time

	mu    sync.Mutex
	cache map[games.FeedKey]resolution
	group singleflight.Group
}

// NewResolver constructs a Resolver with the provided configuration.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		nhlBaseURL: normalizeBaseURL(cfg.NHLBaseURL, defaultNHLBaseURL),
		mlbBaseURL: normalizeBaseURL(cfg.MLBBaseURL, defaultMLBBaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
		cache:      make(map[games.FeedKey]resolution),
	}
}

// Resolve returns the master "Auto" variant followed by the feed's renditions, highest
// bandwidth first. Failures are *providers.Failure values of kind stream_unavailable or
// stream_expired.
func (r *Resolver) Resolve(ctx context.Context, feed games.Feed, cdn games.CDN) ([]games.StreamVariant, error) {
	key := feed.Key()
	if variants, ok := r.lookup(key, cdn); ok {
		r.metrics.RecordCacheHit(metrics.CacheStreams)
		return variants, nil
	}

	// The shared fetch must outlive any single caller; the HTTP client timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key.String()+"@"+string(cdn), func() (any, error) {
		if variants, ok := r.lookup(key, cdn); ok {
			return variants, nil
		}
		variants, err := r.resolve(fetchCtx, feed, cdn)
		if err != nil {
			return nil, err
		}
		r.store(key, cdn, variants)
		return variants, nil
	})

	select {
	case <-ctx.Done():
		return nil, r.unavailable(feed, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return cloneVariants(res.Val.([]games.StreamVariant)), nil
	}
}

// Forget drops any cached resolution for the feed.
func (r *Resolver) Forget(feed games.Feed) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.cache, feed.Key())
}

func (r *Resolver) resolve(ctx context.Context, feed games.Feed, cdn games.CDN) ([]games.StreamVariant, error) {
	start := r.now()
	master, err := r.masterURL(ctx, feed, cdn)
	if err != nil {
		return nil, r.unavailable(feed, err)
	}

	if expired(master, r.now()) {
		r.logWarn(ctx, "stream expired", feed, cdn, "master", master.Redacted())
		return nil, providers.NewFailure(providers.KindStreamExpired, providers.MsgStreamExpired, nil)
	}

	playlist, err := r.fetchManifest(ctx, master)
	if err != nil {
		return nil, r.unavailable(feed, err)
	}
	variants, err := buildVariants(master, playlist)
	if err != nil {
		return nil, r.unavailable(feed, err)
	}

	logging.Info(logging.FromContext(ctx, r.logger), "stream resolved",
		logging.FieldFeed, feed.Key().String(),
		logging.FieldCDN, string(cdn),
		logging.FieldCount, len(variants),
		logging.FieldDurationMS, r.now().Sub(start).Milliseconds(),
	)
	return variants, nil
}

// unavailable wraps cause with the message matching the game's phase: before the
// scheduled start streams are simply not up yet; after it, something is wrong.
func (r *Resolver) unavailable(feed games.Feed, cause error) error {
	var f *providers.Failure
	if errors.As(cause, &f) && (f.Kind == providers.KindStreamExpired || f.Kind == providers.KindStreamUnavailable) {
		return f
	}
	msg := providers.MsgStreamError
	if feed.GameStart.After(r.now()) {
		msg = providers.MsgStreamsNotYet
	}
	return providers.NewFailure(providers.KindStreamUnavailable, msg, cause)
}

func (r *Resolver) lookup(key games.FeedKey, cdn games.CDN) ([]games.StreamVariant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.cache[key]
	if !ok || entry.cdn != cdn {
		return nil, false
	}
	return cloneVariants(entry.variants), true
}

// store replaces the feed's entry; only the most recent CDN is kept.
func (r *Resolver) store(key games.FeedKey, cdn games.CDN, variants []games.StreamVariant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[key] = resolution{cdn: cdn, variants: variants}
}

func cloneVariants(in []games.StreamVariant) []games.StreamVariant {
	out := make([]games.StreamVariant, len(in))
	copy(out, in)
	return out
}

func (r *Resolver) logWarn(ctx context.Context, msg string, feed games.Feed, cdn games.CDN, args ...any) {
	args = append(args, logging.FieldFeed, feed.Key().String(), logging.FieldCDN, string(cdn))
	logging.Warn(logging.FromContext(ctx, r.logger), msg, args...)
}

func (r *Resolver) logDebug(ctx context.Context, msg string, args ...any) {
	logging.Debug(logging.FromContext(ctx, r.logger), msg, args...)
}
