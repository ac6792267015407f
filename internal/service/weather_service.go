package service

import (
	"context"
	"errors"
	"time"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/logger"
	"painel-proxy/internal/repository"
	"painel-proxy/internal/weather"
)

type WeatherProvider interface {
	Name() string
	Fetch(ctx context.Context, q domain.WeatherQuery) (weather.Observation, error)
}

type WeatherService struct {
	provider WeatherProvider
	cache    repository.WeatherRepository
	log      *logger.Logger
	now      func() time.Time
}

// WeatherResult is a reading plus, when the reading is stale, the error that
// prevented a fresh one.
type WeatherResult struct {
	Reading domain.WeatherReading
	Err     error
}

func NewWeatherService(provider WeatherProvider, cache repository.WeatherRepository, log *logger.Logger) *WeatherService {
	if log == nil {
		log = logger.Discard()
	}
	return &WeatherService{provider: provider, cache: cache, log: log, now: time.Now}
}

// Current fetches a fresh reading and caches it. When the fetch fails the last
// good reading is returned flagged stale; with nothing cached the error is
// returned. Invalid input and missing credentials never fall back.
func (s *WeatherService) Current(ctx context.Context, q domain.WeatherQuery) (*WeatherResult, error) {
	log := logger.FromContext(ctx, s.log).With("provider", s.provider.Name())

	obs, err := s.provider.Fetch(ctx, q)
	if err == nil {
		reading := domain.WeatherReading{
			Place:     obs.Place,
			Condition: obs.Condition,
			Min:       obs.Min,
			Max:       obs.Max,
			UpdatedAt: s.now().UTC(),
			Provider:  s.provider.Name(),
		}
		s.cache.Put(reading)
		return &WeatherResult{Reading: reading}, nil
	}

	if !fallsBack(err) {
		return nil, err
	}

	cached, ok := s.cache.Get()
	if !ok {
		log.Error("weather fetch failed with empty cache", "error", err)
		return nil, err
	}

	log.Warn("serving stale weather", "error", err, "updated_at", cached.UpdatedAt)
	cached.Stale = true
	return &WeatherResult{Reading: cached, Err: err}, nil
}

func fallsBack(err error) bool {
	for _, target := range []error{
		domain.ErrInvalidCoordinates,
		domain.ErrInvalidLocation,
		domain.ErrMissingToken,
		context.Canceled,
	} {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}
