package repository

import (
	"sync"

	"painel-proxy/internal/domain"
)

// WeatherRepository holds the last successful reading.
type WeatherRepository interface {
	Get() (domain.WeatherReading, bool)
	Put(reading domain.WeatherReading)
}

type weatherRepository struct {
	mu      sync.RWMutex
	reading domain.WeatherReading
	ok      bool
}

func NewWeatherRepository() WeatherRepository {
	return &weatherRepository{}
}

func (r *weatherRepository) Get() (domain.WeatherReading, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reading, r.ok
}

// Put overwrites the slot. The stored copy is never stale.
func (r *weatherRepository) Put(reading domain.WeatherReading) {
	reading.Stale = false

	r.mu.Lock()
	defer r.mu.Unlock()
	r.reading = reading
	r.ok = true
}
