package repository

import (
	"strings"
	"sync"
)

// LocationRepository remembers provider location identifiers for the life of
// the process. Entries are never invalidated.
type LocationRepository interface {
	Get(city, state string) (string, bool)
	Put(city, state, id string)
}

type locationRepository struct {
	mu  sync.RWMutex
	ids map[string]string
}

func NewLocationRepository() LocationRepository {
	return &locationRepository{ids: make(map[string]string)}
}

func LocationKey(city, state string) string {
	return strings.ToLower(strings.TrimSpace(city)) + "/" + strings.ToUpper(strings.TrimSpace(state))
}

func (r *locationRepository) Get(city, state string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[LocationKey(city, state)]
	return id, ok
}

func (r *locationRepository) Put(city, state, id string) {
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids[LocationKey(city, state)] = id
}
