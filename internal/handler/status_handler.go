package handler

import (
	"net/http"
	"time"
)

type StatusHandler struct {
	started  time.Time
	corStage func() int
	now      func() time.Time
}

// NewStatusHandler serves liveness and the city operations stage. corStage is
// read on every request so the stage follows the configuration it comes from.
func NewStatusHandler(started time.Time, corStage func() int) *StatusHandler {
	return &StatusHandler{started: started, corStage: corStage, now: time.Now}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"uptime": h.now().Sub(h.started).Seconds(),
	})
}

func (h *StatusHandler) CorStage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"estagio": h.corStage(),
	})
}
