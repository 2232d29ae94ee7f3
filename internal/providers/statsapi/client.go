package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

// Config controls how the client reaches the NHL and MLB stats APIs.
type Config struct {
	NHLBaseURL string
	MLBBaseURL string
	HTTPClient *http.Client
}

// Client fetches raw schedule payloads from the public stats APIs.
type Client struct {
	nhlBaseURL string
	mlbBaseURL string
	httpClient httpDoer
}

// NewClient constructs a stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		nhlBaseURL: normalizeBaseURL(cfg.NHLBaseURL, defaultNHLBaseURL),
		mlbBaseURL: normalizeBaseURL(cfg.MLBBaseURL, defaultMLBBaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchSchedule retrieves the schedule for one league and YYYY-MM-DD date.
// Responses are never served from a cache and failed requests are not retried.
func (c *Client) FetchSchedule(ctx context.Context, league teams.League, date string) (providers.RawSchedule, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return providers.RawSchedule{}, fmt.Errorf("statsapi: invalid date %q: %w", date, err)
	}

	req, err := c.buildRequest(ctx, league, date)
	if err != nil {
		return providers.RawSchedule{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.RawSchedule{}, providers.NewFailure(providers.KindNetwork, providers.MsgScheduleNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := fmt.Errorf("statsapi: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return providers.RawSchedule{}, providers.NewFailure(providers.KindNetwork, providers.MsgScheduleNetwork, cause)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return providers.RawSchedule{}, providers.NewFailure(providers.KindNetwork, providers.MsgScheduleNetwork, err)
	}

	total, err := totalItems(body)
	if err != nil {
		return providers.RawSchedule{}, providers.NewFailure(providers.KindParse, providers.MsgScheduleMalformed, err)
	}
	if total == 0 {
		return providers.RawSchedule{}, providers.NewFailure(providers.KindEmptySchedule, providers.MsgNoGames, nil)
	}

	return providers.RawSchedule{League: league, Date: date, Body: body}, nil
}

func (c *Client) buildRequest(ctx context.Context, league teams.League, date string) (*http.Request, error) {
	var base string
	switch league {
	case teams.LeagueNHL:
		base = c.nhlBaseURL
	case teams.LeagueMLB:
		base = c.mlbBaseURL
	default:
		return nil, fmt.Errorf("statsapi: unsupported league %q", league)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/schedule", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("date", date)
	if league == teams.LeagueNHL {
		q.Set("expand", nhlExpand)
	} else {
		q.Set("sportId", mlbSportID)
		q.Set("hydrate", mlbHydrate)
		q.Set("language", mlbLanguage)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	return req, nil
}

func totalItems(body []byte) (int, error) {
	var head struct {
		TotalItems *int `json:"totalItems"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return 0, err
	}
	if head.TotalItems == nil {
		return 0, fmt.Errorf("statsapi: response missing totalItems")
	}
	return *head.TotalItems, nil
}
