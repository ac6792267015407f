package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	result *service.SearchResult
	err    error
	q      string
	sites  []string
}

func (s *stubSearcher) Search(_ context.Context, q string, sites []string) (*service.SearchResult, error) {
	s.q, s.sites = q, sites
	return s.result, s.err
}

type stubWeather struct {
	result *service.WeatherResult
	err    error
	query  domain.WeatherQuery
}

func (s *stubWeather) Current(_ context.Context, q domain.WeatherQuery) (*service.WeatherResult, error) {
	s.query = q
	return s.result, s.err
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// TestHealth verifies the liveness payload
func TestHealth(t *testing.T) {
	started := time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)
	h := NewStatusHandler(started, func() int { return 1 })
	h.now = func() time.Time { return started.Add(90 * time.Second) }

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 90.0, body["uptime"])
}

func TestCorStage(t *testing.T) {
	h := NewStatusHandler(time.Now(), func() int { return 4 })

	rec := httptest.NewRecorder()
	h.CorStage(rec, httptest.NewRequest(http.MethodGet, "/cor/estagio", nil))

	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, 4.0, body["estagio"])
}

// TestSearch_OK verifies parameters are passed through and results wrapped
func TestSearch_OK(t *testing.T) {
	stub := &stubSearcher{result: &service.SearchResult{
		Items:  []domain.NewsItem{{Title: "Chuva forte", URL: "https://g1.globo.com/a", Source: "g1"}},
		RSSURL: "https://news.google.com/rss/search?q=chuva",
	}}
	h := NewSearchHandler(stub, nil)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/search?q=chuva&sites=g1.com,r7.com", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chuva", stub.q)
	assert.Equal(t, []string{"g1.com", "r7.com"}, stub.sites)

	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "https://news.google.com/rss/search?q=chuva", body["rssUrl"])
	results := body["results"].([]any)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "Chuva forte", first["title"])
	assert.Nil(t, first["publishedAt"])
}

// TestSearch_EmptyResultsIsArray verifies an empty list is encoded as [] not null
func TestSearch_EmptyResultsIsArray(t *testing.T) {
	h := NewSearchHandler(&stubSearcher{result: &service.SearchResult{Items: []domain.NewsItem{}}}, nil)

	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

	assert.Contains(t, rec.Body.String(), `"results":[]`)
}

// TestSearch_ErrorStatus verifies the error to status mapping
func TestSearch_ErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		details string
	}{
		{"invalid query", domain.ErrInvalidQuery, http.StatusBadRequest, ""},
		{"upstream", fmt.Errorf("fetch: %w", &domain.UpstreamHTTPError{Status: 503, URL: "u", Body: "Service Unavailable"}), http.StatusBadGateway, "Service Unavailable"},
		{"timeout", fmt.Errorf("fetch: %w", domain.ErrUpstreamTimeout), http.StatusGatewayTimeout, ""},
		{"parse", domain.ErrParse, http.StatusBadGateway, ""},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewSearchHandler(&stubSearcher{err: tt.err}, nil)

			rec := httptest.NewRecorder()
			h.Search(rec, httptest.NewRequest(http.MethodGet, "/search?q=x", nil))

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["ok"])
			assert.NotEmpty(t, body["error"])
			if tt.details != "" {
				assert.Equal(t, tt.details, body["details"])
			} else {
				assert.NotContains(t, body, "details")
			}
		})
	}
}

// TestWeather_Fresh verifies the fresh reading envelope
func TestWeather_Fresh(t *testing.T) {
	updated := time.Date(2025, 10, 13, 12, 0, 0, 0, time.UTC)
	stub := &stubWeather{result: &service.WeatherResult{Reading: domain.WeatherReading{
		Place: "Rio de Janeiro", Condition: "Céu limpo", Min: 19, Max: 29, UpdatedAt: updated, Provider: "open-meteo",
	}}}
	h := NewWeatherHandler(stub, nil)

	rec := httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/weather?lat=-22.9&lon=-43.2&place=Rio", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.WeatherQuery{Lat: "-22.9", Lon: "-43.2", Place: "Rio"}, stub.query)

	body := decode(t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "Céu limpo", body["cond"])
	assert.Equal(t, 19.0, body["min"])
	assert.Equal(t, 29.0, body["max"])
	assert.Equal(t, "2025-10-13T12:00:00Z", body["updatedAt"])
	assert.NotContains(t, body, "stale")
	assert.NotContains(t, body, "error")
}

// TestWeather_Stale verifies a stale reading carries the error note
func TestWeather_Stale(t *testing.T) {
	stub := &stubWeather{result: &service.WeatherResult{
		Reading: domain.WeatherReading{Place: "Rio de Janeiro/RJ", Condition: "Nublado", Min: 20, Max: 27, Stale: true},
		Err:     domain.ErrUpstreamTimeout,
	}}
	h := NewWeatherHandler(stub, nil)

	rec := httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest(http.MethodGet, "/weather?city=Rio+de+Janeiro&state=RJ", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Rio de Janeiro", stub.query.City)
	assert.Equal(t, "RJ", stub.query.State)

	body := decode(t, rec)
	assert.Equal(t, true, body["stale"])
	assert.Equal(t, domain.ErrUpstreamTimeout.Error(), body["error"])
}

func TestWeather_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrInvalidCoordinates, http.StatusBadRequest},
		{domain.ErrInvalidLocation, http.StatusBadRequest},
		{domain.ErrLocationNotFound, http.StatusNotFound},
		{domain.ErrIncompleteForecast, http.StatusBadGateway},
		{domain.ErrMissingToken, http.StatusInternalServerError},
		{&domain.UpstreamHTTPError{Status: 401, Body: "invalid token"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		h := NewWeatherHandler(&stubWeather{err: tt.err}, nil)

		rec := httptest.NewRecorder()
		h.Current(rec, httptest.NewRequest(http.MethodGet, "/weather", nil))

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Equal(t, false, decode(t, rec)["ok"])
	}
}
