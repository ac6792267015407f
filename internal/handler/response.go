package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
)

type errorResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to a status code and the {ok:false} envelope.
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var httpErr *domain.UpstreamHTTPError
	if errors.As(err, &httpErr) {
		resp.Details = httpErr.Body
	}

	l := logger.FromContext(r.Context(), log)
	if status >= http.StatusInternalServerError {
		l.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		l.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}

	writeJSON(w, status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrInvalidCoordinates),
		errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstreamHTTP),
		errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrIncompleteForecast):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
