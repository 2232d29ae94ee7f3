package streams

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/metrics"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func normalizeBaseURL(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return strings.TrimSuffix(raw, "/")
}

// redirectURLs lists the redirect endpoints to try for a feed, in order.
// NHL falls back to the endpoint without a CDN suffix; MLB has a single endpoint.
func (r *Resolver) redirectURLs(feed games.Feed, cdn games.CDN) ([]string, error) {
	id := strconv.FormatInt(feed.PlaybackID, 10)
	switch feed.League {
	case teams.LeagueNHL:
		base := r.nhlBaseURL + "/" + feed.GameDate + "/" + id
		return []string{base + string(cdn), base}, nil
	case teams.LeagueMLB:
		return []string{r.mlbBaseURL + "/" + feed.GameDate + "/" + id + string(cdn)}, nil
	default:
		return nil, fmt.Errorf("unsupported league %q", feed.League)
	}
}

// masterURL walks the redirect endpoints and returns the first usable master playlist URL.
func (r *Resolver) masterURL(ctx context.Context, feed games.Feed, cdn games.CDN) (*url.URL, error) {
	endpoints, err := r.redirectURLs(feed, cdn)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, endpoint := range endpoints {
		master, err := r.fetchRedirect(ctx, endpoint)
		if err == nil {
			return master, nil
		}
		lastErr = err
		r.logDebug(ctx, "stream redirect failed", "endpoint", endpoint, logging.Err(err))
	}
	return nil, lastErr
}

// fetchRedirect GETs a redirect endpoint whose body is the master playlist URL.
func (r *Resolver) fetchRedirect(ctx context.Context, endpoint string) (master *url.URL, err error) {
	start := r.now()
	defer func() {
		r.metrics.RecordUpstreamAttempt(metrics.SourceStreamRedirect, r.now().Sub(start), err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("redirect %s: unexpected status %d", endpoint, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRedirectBytes))
	if err != nil {
		return nil, err
	}
	return parseMasterURL(string(body))
}

func parseMasterURL(body string) (*url.URL, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		return nil, fmt.Errorf("redirect body empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("redirect body is not a url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("redirect body %q is not an absolute http url", raw)
	}
	return u, nil
}
