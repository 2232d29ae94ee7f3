package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	appgames "github.com/preston-bernstein/lazyman-service/internal/app/games"
	"github.com/preston-bernstein/lazyman-service/internal/http/middleware"
	"github.com/preston-bernstein/lazyman-service/internal/http/requestutil"
	"github.com/preston-bernstein/lazyman-service/internal/logging"
	"github.com/preston-bernstein/lazyman-service/internal/providers"
)

// kindBadRequest labels input validation errors in the error body.
const kindBadRequest = "bad_request"

type errorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

var statusByKind = map[providers.FailureKind]int{
	providers.KindEmptySchedule:     http.StatusNotFound,
	providers.KindStreamUnavailable: http.StatusServiceUnavailable,
	providers.KindStreamExpired:     http.StatusGone,
	providers.KindNetwork:           http.StatusBadGateway,
	providers.KindParse:             http.StatusBadGateway,
	providers.KindUnresolvedTeam:    http.StatusBadGateway,
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, kind, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	writeJSON(w, status, errorBody{Error: message, Kind: kind, RequestID: reqID}, logger)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string, logger *slog.Logger) {
	writeError(w, r, http.StatusBadRequest, kindBadRequest, message, logger)
}

// writeFailure maps a service error to a status code and the failure's user-facing message.
func writeFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if errors.Is(err, appgames.ErrFeedNotFound) {
		writeError(w, r, http.StatusNotFound, "feed_not_found", err.Error(), logger)
		return
	}
	if f, ok := providers.AsFailure(err); ok {
		status, known := statusByKind[f.Kind]
		if !known {
			status = http.StatusInternalServerError
		}
		if status >= http.StatusInternalServerError {
			logging.Warn(logger, "request failed", slog.String(logging.FieldKind, string(f.Kind)), logging.Err(err))
		}
		writeError(w, r, status, string(f.Kind), f.Message, logger)
		return
	}
	logging.Error(logger, "request failed", err)
	writeError(w, r, http.StatusInternalServerError, "", "internal error", logger)
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
