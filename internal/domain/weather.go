package domain

import "time"

// WeatherReading is the normalized current condition for one place.
type WeatherReading struct {
	Place     string    `json:"place"`
	Condition string    `json:"cond"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	UpdatedAt time.Time `json:"updatedAt"`
	Stale     bool      `json:"stale,omitempty"`
	Provider  string    `json:"provider,omitempty"`
}

// WeatherQuery carries whichever location parameters the active provider needs.
type WeatherQuery struct {
	Lat   string
	Lon   string
	Place string
	City  string
	State string
}
