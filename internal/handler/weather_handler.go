package handler

import (
	"context"
	"net/http"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
	"painel-proxy/internal/service"
)

type WeatherReader interface {
	Current(ctx context.Context, q domain.WeatherQuery) (*service.WeatherResult, error)
}

type WeatherHandler struct {
	weatherService WeatherReader
	log            *logger.Logger
}

func NewWeatherHandler(weatherService WeatherReader, log *logger.Logger) *WeatherHandler {
	if log == nil {
		log = logger.Discard()
	}
	return &WeatherHandler{weatherService: weatherService, log: log}
}

type weatherResponse struct {
	OK        bool      `json:"ok"`
	Place     string    `json:"place"`
	Condition string    `json:"cond"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	UpdatedAt time.Time `json:"updatedAt"`
	Stale     bool      `json:"stale,omitempty"`
	Error     string    `json:"error,omitempty"`
	Provider  string    `json:"provider,omitempty"`
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q := domain.WeatherQuery{
		Lat:   query.Get("lat"),
		Lon:   query.Get("lon"),
		Place: query.Get("place"),
		City:  query.Get("city"),
		State: query.Get("state"),
	}

	result, err := h.weatherService.Current(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	reading := result.Reading
	resp := weatherResponse{
		OK:        true,
		Place:     reading.Place,
		Condition: reading.Condition,
		Min:       reading.Min,
		Max:       reading.Max,
		UpdatedAt: reading.UpdatedAt,
		Stale:     reading.Stale,
		Provider:  reading.Provider,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}
