package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	domaingames "github.com/preston-bernstein/lazyman-service/internal/domain/games"
	"github.com/preston-bernstein/lazyman-service/internal/domain/teams"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/poller"
	"github.com/preston-bernstein/lazyman-service/internal/store"
	"github.com/preston-bernstein/lazyman-service/internal/timeutil"
)

type nowFunc func() time.Time

// GamesService is the schedule surface the handlers depend on.
type GamesService interface {
	List(ctx context.Context, league teams.League, date string, favs teams.Favorites) ([]domaingames.Game, error)
	Reload(ctx context.Context, league teams.League, date string) ([]domaingames.Game, error)
	Feed(ctx context.Context, league teams.League, date string, playbackID int64) (domaingames.Feed, domaingames.Game, error)
	Slots() []store.ScheduleKey
}

// TeamsService lists registry teams.
type TeamsService interface {
	Teams(league teams.League) []teams.Team
}

// StreamResolver turns a feed into playable variants.
type StreamResolver interface {
	Resolve(ctx context.Context, feed domaingames.Feed, cdn domaingames.CDN) ([]domaingames.StreamVariant, error)
	Forget(feed domaingames.Feed)
}

// Options carries the display settings shared by all requests.
type Options struct {
	Registry  *teams.Registry
	Favorites teams.Favorites
	Location  *time.Location
}

// Handler wires HTTP routes to the schedule, team and stream services.
type Handler struct {
	games     GamesService
	teams     TeamsService
	streams   StreamResolver
	registry  *teams.Registry
	favorites teams.Favorites
	loc       *time.Location
	logger    *slog.Logger
	now       nowFunc
	statusFn  func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(gamesSvc GamesService, teamsSvc TeamsService, resolver StreamResolver, opts Options, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	reg := opts.Registry
	if reg == nil {
		reg = teams.DefaultRegistry()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		games:     gamesSvc,
		teams:     teamsSvc,
		streams:   resolver,
		registry:  reg,
		favorites: opts.Favorites,
		loc:       loc,
		logger:    logger,
		now:       time.Now,
		statusFn:  statusFn,
	}
}

type gameView struct {
	domaingames.Game
	Description string `json:"description"`
	Favorite    bool   `json:"favorite"`
}

type gamesResponse struct {
	League teams.League `json:"league"`
	Date   string       `json:"date"`
	Games  []gameView   `json:"games"`
}

type teamsResponse struct {
	League teams.League `json:"league"`
	Teams  []teams.Team `json:"teams"`
}

type readyResponse struct {
	Status    string   `json:"status"`
	Schedules []string `json:"schedules"`
}

type streamsResponse struct {
	Feed     domaingames.Feed            `json:"feed"`
	Title    string                      `json:"title"`
	CDN      domaingames.CDN             `json:"cdn"`
	Variants []domaingames.StreamVariant `json:"variants"`
}

type cdnView struct {
	ID    domaingames.CDN `json:"id"`
	Title string          `json:"title"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "", "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes) and lists the cached slots.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn != nil {
		status := h.statusFn()
		if !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, "", msg, h.logger)
			return
		}
	}
	resp := readyResponse{Status: "ready", Schedules: []string{}}
	for _, k := range h.games.Slots() {
		resp.Schedules = append(resp.Schedules, string(k.League)+"/"+k.Date)
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// ListGames returns the ordered schedule for a league and date.
// The favorites query parameter replaces the configured favorites for the request;
// refresh=1 forces a reload before listing.
func (h *Handler) ListGames(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	league, date, ok := h.leagueAndDate(w, r, logger)
	if !ok {
		return
	}

	favs := h.favorites
	if raw := strings.TrimSpace(r.URL.Query().Get("favorites")); raw != "" {
		parsed, err := teams.ParseFavorites(raw, h.registry)
		if err != nil {
			writeBadRequest(w, r, err.Error(), logger)
			return
		}
		favs = parsed
	}

	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		if _, err := h.games.Reload(r.Context(), league, date); err != nil {
			writeFailure(w, r, err, logger)
			return
		}
	}

	list, err := h.games.List(r.Context(), league, date, favs)
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}

	views := make([]gameView, 0, len(list))
	for _, g := range list {
		views = append(views, gameView{Game: g, Description: g.Description(h.loc), Favorite: g.HasFavoriteTeam(favs)})
	}
	logging.Info(logger, "served games",
		slog.String(logging.FieldLeague, string(league)),
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(views)),
	)
	writeJSON(w, nethttp.StatusOK, gamesResponse{League: league, Date: date, Games: views}, logger)
}

// Teams lists the registry teams for a league.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	league, err := teams.ParseLeague(chi.URLParam(r, "league"))
	if err != nil {
		writeBadRequest(w, r, err.Error(), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, teamsResponse{League: league, Teams: h.teams.Teams(league)}, h.logger)
}

// Streams resolves the playable variants for one feed of the day's schedule.
func (h *Handler) Streams(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	league, date, ok := h.leagueAndDate(w, r, logger)
	if !ok {
		return
	}
	playbackID, err := strconv.ParseInt(chi.URLParam(r, "playbackID"), 10, 64)
	if err != nil || playbackID <= 0 {
		writeBadRequest(w, r, "invalid playback id", logger)
		return
	}
	cdn, err := domaingames.ParseCDN(r.URL.Query().Get("cdn"))
	if err != nil {
		writeBadRequest(w, r, err.Error(), logger)
		return
	}

	feed, _, err := h.games.Feed(r.Context(), league, date, playbackID)
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		h.streams.Forget(feed)
	}
	variants, err := h.streams.Resolve(r.Context(), feed, cdn)
	if err != nil {
		writeFailure(w, r, err, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, streamsResponse{Feed: feed, Title: feed.Title(), CDN: cdn, Variants: variants}, logger)
}

// CDNs lists the selectable content-delivery networks, default first.
func (h *Handler) CDNs(w nethttp.ResponseWriter, r *nethttp.Request) {
	out := make([]cdnView, 0, len(domaingames.CDNs))
	for _, c := range domaingames.CDNs {
		out = append(out, cdnView{ID: c, Title: c.Title()})
	}
	writeJSON(w, nethttp.StatusOK, out, h.logger)
}

func (h *Handler) leagueAndDate(w nethttp.ResponseWriter, r *nethttp.Request, logger *slog.Logger) (teams.League, string, bool) {
	league, err := teams.ParseLeague(chi.URLParam(r, "league"))
	if err != nil {
		writeBadRequest(w, r, err.Error(), logger)
		return "", "", false
	}
	date, err := timeutil.NormalizeDate(strings.TrimSpace(r.URL.Query().Get("date")), h.now(), h.loc)
	if err != nil {
		writeBadRequest(w, r, err.Error(), logger)
		return "", "", false
	}
	return league, date, true
}
