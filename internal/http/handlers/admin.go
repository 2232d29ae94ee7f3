package handlers

import (
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/lazyman-service/internal/http/requestutil"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
)

// ReloadGames refetches the schedule for a league and date and replaces the cached slot.
// A failed reload leaves the previous schedule in place.
func (h *Handler) ReloadGames(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	league, date, ok := h.leagueAndDate(w, r, logger)
	if !ok {
		return
	}

	list, err := h.games.Reload(r.Context(), league, date)
	if err != nil {
		logging.Warn(logger, "schedule reload failed",
			slog.String(logging.FieldLeague, string(league)),
			slog.String(logging.FieldDate, date),
			slog.String("client_ip", requestutil.ClientIP(r)),
			logging.Err(err),
		)
		writeFailure(w, r, err, logger)
		return
	}

	logging.Info(logger, "schedule reloaded on request",
		slog.String(logging.FieldLeague, string(league)),
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(list)),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"league": league,
		"date":   date,
		"games":  len(list),
		"status": "ok",
	}, logger)
}
