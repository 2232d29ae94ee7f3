package streams

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

const sampleManifest = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,FRAME-RATE=29.97
360/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=1200000,RESOLUTION=1280x720,FRAME-RATE=59.94
720/index.m3u8
#EXT-X-STREAM-INF:CODECS="avc1.4d401f"
audio/index.m3u8
`

// streamServer fakes both the redirect endpoints and the HLS origin.
type streamServer struct {
	*httptest.Server
	redirects atomic.Int32
	manifests atomic.Int32
	// routes maps a redirect path to the master path it should point at; missing paths 404.
	routes   map[string]string
	manifest string
	gate     chan struct{}
}

func newStreamServer(t *testing.T, routes map[string]string) *streamServer {
	t.Helper()
	s := &streamServer{routes: routes, manifest: sampleManifest}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/hls/") {
			s.manifests.Add(1)
			_, _ = w.Write([]byte(s.manifest))
			return
		}
		s.redirects.Add(1)
		if s.gate != nil {
			<-s.gate
		}
		target, ok := s.routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "%s%s\n", s.URL, target)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestResolver(s *streamServer, rec *metrics.Recorder) *Resolver {
	return NewResolver(Config{
		NHLBaseURL: s.URL + "/m3u8",
		MLBBaseURL: s.URL + "/mlb/m3u8",
		HTTPClient: s.Client(),
		Metrics:    rec,
	})
}

func nhlFeed() games.Feed {
	return games.Feed{
		Type:       "Home",
		PlaybackID: 63290303,
		League:     teams.LeagueNHL,
		GameDate:   "2021-03-01",
		GameStart:  time.Date(2021, 3, 1, 23, 0, 0, 0, time.UTC),
	}
}

func TestResolveRanksVariants(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303akc": "/hls/abc/master.m3u8"})
	r := newTestResolver(s, nil)

	variants, err := r.Resolve(context.Background(), nhlFeed(), games.CDNAkamai)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(variants) != 4 {
		t.Fatalf("expected master plus 3 renditions, got %d", len(variants))
	}

	master := variants[0]
	if master.Quality != "Auto" || master.URL != s.URL+"/hls/abc/master.m3u8" || master.Bandwidth != nil || master.FrameRate != nil {
		t.Fatalf("unexpected master entry %+v", master)
	}

	// Unknown bandwidth ranks as the maximum, so it comes first.
	wantURLs := []string{
		s.URL + "/hls/abc/audio/index.m3u8",
		s.URL + "/hls/abc/720/index.m3u8",
		s.URL + "/hls/abc/360/index.m3u8",
	}
	for i, want := range wantURLs {
		if variants[i+1].URL != want {
			t.Fatalf("position %d: expected %s, got %s", i+1, want, variants[i+1].URL)
		}
	}
	if variants[1].Quality != "Unknown" || variants[1].Bandwidth != nil || variants[1].FrameRate != nil {
		t.Fatalf("unexpected unknown entry %+v", variants[1])
	}
	hd := variants[2]
	if hd.Quality != "1280x720" || *hd.Bandwidth != 1200000 || *hd.FrameRate != 60 {
		t.Fatalf("unexpected 720p entry %+v", hd)
	}
	if *variants[3].FrameRate != 30 {
		t.Fatalf("expected rounded framerate 30, got %d", *variants[3].FrameRate)
	}
}

func TestResolveMemoizesPerLastCDN(t *testing.T) {
	s := newStreamServer(t, map[string]string{
		"/m3u8/2021-03-01/63290303akc": "/hls/akc/master.m3u8",
		"/m3u8/2021-03-01/63290303l3c": "/hls/l3c/master.m3u8",
	})
	rec := metrics.NewRecorder()
	r := newTestResolver(s, rec)
	feed := nhlFeed()

	first, err := r.Resolve(context.Background(), feed, games.CDNAkamai)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	second, err := r.Resolve(context.Background(), feed, games.CDNAkamai)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if s.redirects.Load() != 1 || s.manifests.Load() != 1 {
		t.Fatalf("expected one fetch sequence, got redirects=%d manifests=%d", s.redirects.Load(), s.manifests.Load())
	}
	if first[0].URL != second[0].URL || rec.CacheHits(metrics.CacheStreams) != 1 {
		t.Fatalf("expected cached result")
	}

	// Mutating a returned slice must not leak into the cache.
	second[0].URL = "mutated"
	if again, _ := r.Resolve(context.Background(), feed, games.CDNAkamai); again[0].URL == "mutated" {
		t.Fatalf("expected cache isolation from callers")
	}

	if _, err := r.Resolve(context.Background(), feed, games.CDNLevel3); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := r.Resolve(context.Background(), feed, games.CDNAkamai); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	// Switching CDN replaces the entry, so going back to Akamai refetches.
	if s.redirects.Load() != 3 {
		t.Fatalf("expected refetch after cdn switch, got %d redirects", s.redirects.Load())
	}
	if rec.UpstreamCalls(metrics.SourceStreamRedirect) != 3 || rec.UpstreamCalls(metrics.SourceStreamManifest) != 3 {
		t.Fatalf("unexpected upstream metrics %+v", rec.Snapshot(metrics.SourceStreamRedirect))
	}

	r.Forget(feed)
	if _, err := r.Resolve(context.Background(), feed, games.CDNAkamai); err != nil || s.redirects.Load() != 4 {
		t.Fatalf("expected refetch after forget, err=%v redirects=%d", err, s.redirects.Load())
	}
}

func TestResolveNHLFallsBackToUnsuffixedEndpoint(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303": "/hls/plain/master.m3u8"})
	r := newTestResolver(s, nil)

	variants, err := r.Resolve(context.Background(), nhlFeed(), games.CDNLevel3)
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if variants[0].URL != s.URL+"/hls/plain/master.m3u8" {
		t.Fatalf("unexpected master %s", variants[0].URL)
	}
	if s.redirects.Load() != 2 {
		t.Fatalf("expected suffixed attempt then fallback, got %d", s.redirects.Load())
	}
}

func TestResolveMLBHasNoFallback(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/mlb/m3u8/2018-04-05/1191483": "/hls/mlb/master.m3u8"})
	r := newTestResolver(s, nil)
	r.now = func() time.Time { return time.Date(2018, 4, 6, 0, 0, 0, 0, time.UTC) }

	feed := games.Feed{PlaybackID: 1191483, League: teams.LeagueMLB, GameDate: "2018-04-05",
		GameStart: time.Date(2018, 4, 5, 17, 5, 0, 0, time.UTC)}
	_, err := r.Resolve(context.Background(), feed, games.CDNAkamai)
	if !errors.Is(err, providers.ErrStreamUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	f, _ := providers.AsFailure(err)
	if f.Message != providers.MsgStreamError {
		t.Fatalf("expected outage message after start, got %q", f.Message)
	}
	if s.redirects.Load() != 1 {
		t.Fatalf("expected a single redirect attempt, got %d", s.redirects.Load())
	}
}

func TestResolveFailureMessagesByGamePhase(t *testing.T) {
	s := newStreamServer(t, nil)
	r := newTestResolver(s, nil)
	feed := nhlFeed()

	r.now = func() time.Time { return feed.GameStart.Add(-time.Hour) }
	_, err := r.Resolve(context.Background(), feed, games.CDNAkamai)
	if f, ok := providers.AsFailure(err); !ok || f.Message != providers.MsgStreamsNotYet {
		t.Fatalf("expected pre-game message, got %v", err)
	}

	r.now = func() time.Time { return feed.GameStart.Add(time.Hour) }
	_, err = r.Resolve(context.Background(), feed, games.CDNAkamai)
	if f, ok := providers.AsFailure(err); !ok || f.Message != providers.MsgStreamError {
		t.Fatalf("expected outage message, got %v", err)
	}
}

func TestResolveRejectsEmptyAndBadManifests(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"zero variants", "#EXTM3U\n#EXT-X-VERSION:3\n"},
		{"media playlist", "#EXTM3U\n#EXT-X-TARGETDURATION:10\n#EXTINF:9.0,\nseg0.ts\n#EXT-X-ENDLIST\n"},
		{"not hls", "<html>oops</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303akc": "/hls/x/master.m3u8"})
			s.manifest = tt.manifest
			r := newTestResolver(s, nil)
			if _, err := r.Resolve(context.Background(), nhlFeed(), games.CDNAkamai); !errors.Is(err, providers.ErrStreamUnavailable) {
				t.Fatalf("expected unavailable, got %v", err)
			}
		})
	}
}

func TestResolveDetectsExpiredStream(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303akc": "/hls/x/master.m3u8?hdnea=exp=1614643200~acl=/*"})
	r := newTestResolver(s, nil)
	r.now = func() time.Time { return time.Unix(1614643200, 0).Add(expiryGrace + time.Second) }

	_, err := r.Resolve(context.Background(), nhlFeed(), games.CDNAkamai)
	if !errors.Is(err, providers.ErrStreamExpired) {
		t.Fatalf("expected expired, got %v", err)
	}
	if f, _ := providers.AsFailure(err); f.Message != "The stream has expired. Please report the game you are trying to play." {
		t.Fatalf("unexpected message %q", f.Message)
	}
	if s.manifests.Load() != 0 {
		t.Fatalf("expected no manifest fetch for expired stream")
	}

	r.now = func() time.Time { return time.Unix(1614643200, 0).Add(expiryGrace - time.Second) }
	if _, err := r.Resolve(context.Background(), nhlFeed(), games.CDNAkamai); err != nil {
		t.Fatalf("expected stream within grace to resolve, got %v", err)
	}
}

func TestResolveSingleFlight(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303akc": "/hls/abc/master.m3u8"})
	s.gate = make(chan struct{})
	r := newTestResolver(s, nil)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]games.StreamVariant, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Resolve(context.Background(), nhlFeed(), games.CDNAkamai)
		}(i)
	}

	// Let every caller reach the in-flight call before the upstream answers.
	time.Sleep(50 * time.Millisecond)
	close(s.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil || len(results[i]) != 4 {
			t.Fatalf("caller %d: err=%v len=%d", i, errs[i], len(results[i]))
		}
	}
	if s.redirects.Load() != 1 || s.manifests.Load() != 1 {
		t.Fatalf("expected one shared fetch, got redirects=%d manifests=%d", s.redirects.Load(), s.manifests.Load())
	}
}

func TestResolveCallerCancellation(t *testing.T) {
	s := newStreamServer(t, map[string]string{"/m3u8/2021-03-01/63290303akc": "/hls/abc/master.m3u8"})
	s.gate = make(chan struct{})
	r := newTestResolver(s, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Resolve(ctx, nhlFeed(), games.CDNAkamai); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation cause, got %v", err)
	}
	close(s.gate)
}

func TestParseMasterURL(t *testing.T) {
	if _, err := parseMasterURL("  \n"); err == nil {
		t.Fatalf("expected empty body error")
	}
	if _, err := parseMasterURL("/relative/master.m3u8"); err == nil {
		t.Fatalf("expected relative url error")
	}
	u, err := parseMasterURL(" https://cdn.example/master.m3u8\n")
	if err != nil || u.Host != "cdn.example" {
		t.Fatalf("unexpected %v err=%v", u, err)
	}
}
