package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appgames "github.com/preston-bernstein/lazyman-service/internal/app/games"
	appteams "github.com/preston-bernstein/lazyman-service/internal/app/teams"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/http/handlers"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
	"github.com/preston-bernstein/lazyman-service/internal/normalize"
	"github.com/preston-bernstein/lazyman-service/internal/providers/fixture"
	"github.com/preston-bernstein/lazyman-service/internal/store"
	"github.com/preston-bernstein/lazyman-service/internal/streams"
	"github.com/preston-bernstein/lazyman-service/internal/testutil"
)

const masterPlaylist = `#EXTM3U
#EXT-X-STREAM-INF:BANDWIDTH=2000000,RESOLUTION=1280x720,FRAME-RATE=60.000
720/index.m3u8
#EXT-X-STREAM-INF:BANDWIDTH=800000,RESOLUTION=640x360,FRAME-RATE=30.000
360/index.m3u8
`

func newTestRouter(t *testing.T) (http.Handler, *metrics.Recorder) {
	t.Helper()
	var base string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/nhl/2021-03-01/63290303akc":
			fmt.Fprint(w, base+"/master.m3u8")
		case "/master.m3u8":
			fmt.Fprint(w, masterPlaylist)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(upstream.Close)
	base = upstream.URL

	reg := teams.DefaultRegistry()
	rec := metrics.NewRecorder()
	gamesSvc := appgames.NewService(store.NewScheduleCache(), fixture.New(), normalize.New(reg, nil), nil, rec)
	resolver := streams.NewResolver(streams.Config{NHLBaseURL: base + "/nhl", MLBBaseURL: base + "/mlb", Metrics: rec})
	h := handlers.NewHandler(gamesSvc, appteams.NewService(reg), resolver, handlers.Options{Registry: reg}, nil, nil)
	return NewRouter(h, RouterConfig{Metrics: rec}), rec
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router, _ := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/ready", http.StatusOK},
		{http.MethodGet, "/cdns", http.StatusOK},
		{http.MethodGet, "/leagues/NHL/games?date=2021-03-01", http.StatusOK},
		{http.MethodPost, "/leagues/MLB/games/reload?date=2021-03-01", http.StatusOK},
		{http.MethodGet, "/leagues/MLB/teams", http.StatusOK},
		{http.MethodGet, "/leagues/NHL/feeds/63290303/streams?date=2021-03-01", http.StatusOK},
		{http.MethodGet, "/leagues/NFL/games", http.StatusBadRequest},
	}

	for _, tc := range cases {
		rr := testutil.Serve(router, tc.method, tc.path, nil)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d: %s", tc.method, tc.path, tc.want, rr.Code, rr.Body.String())
		}
	}
}

func TestRouterResolvesStreamsEndToEnd(t *testing.T) {
	router, rec := newTestRouter(t)

	rr := testutil.Serve(router, http.MethodGet, "/leagues/NHL/feeds/63290303/streams?date=2021-03-01&cdn=akc", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Title    string `json:"title"`
		Variants []struct {
			URL       string `json:"url"`
			Quality   string `json:"quality"`
			Bandwidth *int   `json:"bandwidth"`
		} `json:"variants"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Title != "Home (NESN)" || len(resp.Variants) != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.Variants[0].Quality != "Auto" || !strings.HasSuffix(resp.Variants[1].URL, "/720/index.m3u8") {
		t.Fatalf("unexpected variant order %+v", resp.Variants)
	}

	// Second request is served from the resolver cache.
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/leagues/NHL/feeds/63290303/streams?date=2021-03-01", nil), http.StatusOK)
	if rec.CacheHits(metrics.CacheStreams) != 1 {
		t.Fatalf("expected one stream cache hit, got %d", rec.CacheHits(metrics.CacheStreams))
	}
}

func TestRouterUnknownFeed(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := testutil.Serve(router, http.MethodGet, "/leagues/NHL/feeds/999/streams?date=2021-03-01", nil)
	if body := testutil.AssertError(t, rr, http.StatusNotFound, "feed_not_found"); body.RequestID == "" {
		t.Fatalf("expected request id in error body")
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router, _ := newTestRouter(t)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/does-not-exist", nil), http.StatusNotFound)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodDelete, "/health", nil), http.StatusMethodNotAllowed)
}

func TestRouterSetsCORSHeaders(t *testing.T) {
	router, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rr := testutil.ServeRequest(router, req)
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS header on cross-origin request")
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}
