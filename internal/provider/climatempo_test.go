package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type climatempoStub struct {
	lookups  atomic.Int32
	locales  string
	current  string
	forecast string
}

func (s *climatempoStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") != "tok" {
		http.Error(w, `{"error":true,"detail":"invalid token"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/locale/city":
		s.lookups.Add(1)
		w.Write([]byte(s.locales))
	case "/api/v1/weather/locale/5959/current":
		w.Write([]byte(s.current))
	case "/api/v1/forecast/locale/5959/days/15":
		w.Write([]byte(s.forecast))
	default:
		http.NotFound(w, r)
	}
}

func newClimatempoStub() *climatempoStub {
	return &climatempoStub{
		locales:  `[{"id":5959,"name":"Rio de Janeiro","state":"RJ","country":"BR"}]`,
		current:  `{"id":5959,"name":"Rio de Janeiro","state":"RJ","data":{"temperature":25,"condition":"Poucas nuvens"}}`,
		forecast: `{"id":5959,"name":"Rio de Janeiro","data":[{"date":"2025-10-13","temperature":{"min":19,"max":29},"text_icon":{"text":{"pt":"Sol com algumas nuvens","phrase":{"reduced":"Sol e nuvens"}}}}]}`,
	}
}

func newClimatempo(t *testing.T, stub *climatempoStub, token string, locations repository.LocationRepository) *Climatempo {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	return NewClimatempo(NewFetcher(srv.Client(), fastPolicy(), nil), locations, ClimatempoOptions{
		Base:         srv.URL,
		Token:        token,
		DefaultCity:  "Rio de Janeiro",
		DefaultState: "RJ",
	})
}

func TestClimatempo_Fetch(t *testing.T) {
	stub := newClimatempoStub()
	p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())

	obs, err := p.Fetch(context.Background(), domain.WeatherQuery{City: "Rio de Janeiro", State: "rj"})

	require.NoError(t, err)
	assert.Equal(t, "Rio de Janeiro/RJ", obs.Place)
	assert.Equal(t, "Poucas nuvens", obs.Condition)
	assert.Equal(t, 19.0, obs.Min)
	assert.Equal(t, 29.0, obs.Max)
}

// TestClimatempo_LocaleLookedUpOnce verifies the locale id is cached after the first lookup
func TestClimatempo_LocaleLookedUpOnce(t *testing.T) {
	stub := newClimatempoStub()
	p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())

	for range 3 {
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{})
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), stub.lookups.Load())
}

// TestClimatempo_PreResolvedLocale verifies a seeded id skips the lookup entirely
func TestClimatempo_PreResolvedLocale(t *testing.T) {
	stub := newClimatempoStub()
	locations := repository.NewLocationRepository()
	locations.Put("Rio de Janeiro", "RJ", "5959")
	p := newClimatempo(t, stub, "tok", locations)

	_, err := p.Fetch(context.Background(), domain.WeatherQuery{})

	require.NoError(t, err)
	assert.Zero(t, stub.lookups.Load())
}

// TestClimatempo_TextFallback verifies the forecast phrase is used without a current condition
func TestClimatempo_TextFallback(t *testing.T) {
	stub := newClimatempoStub()
	stub.current = `{"id":5959,"name":"Rio de Janeiro","data":{"temperature":25}}`
	p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())

	obs, err := p.Fetch(context.Background(), domain.WeatherQuery{})

	require.NoError(t, err)
	assert.Equal(t, "Sol e nuvens", obs.Condition)
}

func TestClimatempo_FlatForecastShape(t *testing.T) {
	stub := newClimatempoStub()
	stub.forecast = `{"data":[{"min":17,"max":23}]}`
	p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())

	obs, err := p.Fetch(context.Background(), domain.WeatherQuery{})

	require.NoError(t, err)
	assert.Equal(t, 17.0, obs.Min)
	assert.Equal(t, 23.0, obs.Max)
}

func TestClimatempo_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		p := newClimatempo(t, newClimatempoStub(), "", repository.NewLocationRepository())
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{})
		assert.ErrorIs(t, err, domain.ErrMissingToken)
	})

	t.Run("unknown city", func(t *testing.T) {
		stub := newClimatempoStub()
		stub.locales = `[]`
		p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{City: "Atlântida", State: "XX"})
		assert.ErrorIs(t, err, domain.ErrLocationNotFound)
	})

	t.Run("state without city", func(t *testing.T) {
		p := newClimatempo(t, newClimatempoStub(), "tok", repository.NewLocationRepository())
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{State: "RJ"})
		assert.ErrorIs(t, err, domain.ErrInvalidLocation)
	})

	t.Run("rejected token", func(t *testing.T) {
		p := newClimatempo(t, newClimatempoStub(), "wrong", repository.NewLocationRepository())
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{})
		var httpErr *domain.UpstreamHTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
		assert.NotContains(t, httpErr.URL, "wrong")
	})

	t.Run("incomplete forecast", func(t *testing.T) {
		stub := newClimatempoStub()
		stub.forecast = `{"data":[{"temperature":{"max":30}}]}`
		p := newClimatempo(t, stub, "tok", repository.NewLocationRepository())
		_, err := p.Fetch(context.Background(), domain.WeatherQuery{})
		assert.ErrorIs(t, err, domain.ErrIncompleteForecast)
	})
}
