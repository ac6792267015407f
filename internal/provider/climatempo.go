package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/repository"
	"painel-proxy/internal/weather"
)

// Climatempo is the token-authenticated provider addressed by city and state.
// Its numeric locale id is looked up once per city and kept in locations.
type Climatempo struct {
	fetcher      *Fetcher
	base         string
	token        string
	locations    repository.LocationRepository
	defaultCity  string
	defaultState string
}

type ClimatempoOptions struct {
	Base         string
	Token        string
	DefaultCity  string
	DefaultState string
}

func NewClimatempo(fetcher *Fetcher, locations repository.LocationRepository, opts ClimatempoOptions) *Climatempo {
	if opts.Base == "" {
		opts.Base = "https://apiadvisor.climatempo.com.br"
	}
	return &Climatempo{
		fetcher:      fetcher,
		base:         strings.TrimRight(opts.Base, "/"),
		token:        opts.Token,
		locations:    locations,
		defaultCity:  opts.DefaultCity,
		defaultState: opts.DefaultState,
	}
}

func (p *Climatempo) Name() string { return "climatempo" }

type climatempoLocale struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	State string      `json:"state"`
}

type climatempoCurrent struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Data  struct {
		Condition string `json:"condition"`
		Text      string `json:"text"`
	} `json:"data"`
}

type climatempoForecast struct {
	Name string                  `json:"name"`
	Data []climatempoForecastDay `json:"data"`
}

type climatempoForecastDay struct {
	weather.ForecastDay
	TextIcon struct {
		Text struct {
			PT     string `json:"pt"`
			Phrase struct {
				Reduced string `json:"reduced"`
			} `json:"phrase"`
		} `json:"text"`
	} `json:"text_icon"`
}

// climatempoConditions lists the condition fields in order of preference.
var climatempoConditions = []func(climatempoPayload) string{
	func(p climatempoPayload) string { return p.current.Data.Condition },
	func(p climatempoPayload) string { return p.current.Data.Text },
	func(p climatempoPayload) string { return p.today().TextIcon.Text.Phrase.Reduced },
	func(p climatempoPayload) string { return p.today().TextIcon.Text.PT },
}

type climatempoPayload struct {
	current  climatempoCurrent
	forecast climatempoForecast
}

func (p climatempoPayload) today() climatempoForecastDay {
	if len(p.forecast.Data) == 0 {
		return climatempoForecastDay{}
	}
	return p.forecast.Data[0]
}

func (p *Climatempo) Fetch(ctx context.Context, q domain.WeatherQuery) (weather.Observation, error) {
	if p.token == "" {
		return weather.Observation{}, domain.ErrMissingToken
	}

	city, state := strings.TrimSpace(q.City), strings.TrimSpace(q.State)
	if city == "" && state == "" {
		city, state = p.defaultCity, p.defaultState
	}
	if city == "" || state == "" {
		return weather.Observation{}, domain.ErrInvalidLocation
	}

	id, err := p.localeID(ctx, city, state)
	if err != nil {
		return weather.Observation{}, err
	}

	var payload climatempoPayload
	if err := p.fetcher.GetJSON(ctx, p.endpoint("/api/v1/weather/locale/"+id+"/current", nil), &payload.current); err != nil {
		return weather.Observation{}, err
	}
	if err := p.fetcher.GetJSON(ctx, p.endpoint("/api/v1/forecast/locale/"+id+"/days/15", nil), &payload.forecast); err != nil {
		return weather.Observation{}, err
	}

	days := make([]weather.ForecastDay, 0, len(payload.forecast.Data))
	for _, d := range payload.forecast.Data {
		days = append(days, d.ForecastDay)
	}
	lo, hi, err := weather.MinMax(days)
	if err != nil {
		return weather.Observation{}, err
	}

	condition := weather.FirstText(payload, climatempoConditions...)
	if condition == "" {
		condition = weather.UnknownCondition
	}

	place := weather.FirstText(payload,
		func(p climatempoPayload) string { return p.current.Name },
		func(p climatempoPayload) string { return p.forecast.Name },
	)
	if place == "" {
		place = city
	}

	return weather.Observation{
		Place:     fmt.Sprintf("%s/%s", place, strings.ToUpper(state)),
		Condition: condition,
		Min:       lo,
		Max:       hi,
	}, nil
}

// localeID returns the cached id for city/state, looking it up on first use.
func (p *Climatempo) localeID(ctx context.Context, city, state string) (string, error) {
	if id, ok := p.locations.Get(city, state); ok {
		return id, nil
	}

	v := url.Values{}
	v.Set("name", city)
	v.Set("state", strings.ToUpper(state))

	var locales []climatempoLocale
	if err := p.fetcher.GetJSON(ctx, p.endpoint("/api/v1/locale/city", v), &locales); err != nil {
		return "", err
	}
	if len(locales) == 0 || locales[0].ID.String() == "" {
		return "", fmt.Errorf("%w: %s/%s", domain.ErrLocationNotFound, city, state)
	}

	id := locales[0].ID.String()
	p.locations.Put(city, state, id)
	return id, nil
}

func (p *Climatempo) endpoint(path string, v url.Values) string {
	if v == nil {
		v = url.Values{}
	}
	v.Set("token", p.token)
	return p.base + path + "?" + v.Encode()
}
