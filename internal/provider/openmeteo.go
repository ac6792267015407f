package provider

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"painel-proxy/internal/domain"
	"painel-proxy/internal/weather"
)

// OpenMeteo is the token-free provider addressed by coordinates.
type OpenMeteo struct {
	fetcher      *Fetcher
	base         string
	defaultLat   string
	defaultLon   string
	defaultPlace string
}

type OpenMeteoOptions struct {
	Base         string
	DefaultLat   string
	DefaultLon   string
	DefaultPlace string
}

func NewOpenMeteo(fetcher *Fetcher, opts OpenMeteoOptions) *OpenMeteo {
	if opts.Base == "" {
		opts.Base = "https://api.open-meteo.com/v1/forecast"
	}
	return &OpenMeteo{
		fetcher:      fetcher,
		base:         opts.Base,
		defaultLat:   opts.DefaultLat,
		defaultLon:   opts.DefaultLon,
		defaultPlace: opts.DefaultPlace,
	}
}

func (p *OpenMeteo) Name() string { return "open-meteo" }

type openMeteoResponse struct {
	Current *struct {
		WeatherCode *int     `json:"weather_code"`
		Temperature *float64 `json:"temperature_2m"`
	} `json:"current"`
	Daily *struct {
		WeatherCode []*int     `json:"weather_code"`
		Max         []*float64 `json:"temperature_2m_max"`
		Min         []*float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

func (p *OpenMeteo) Fetch(ctx context.Context, q domain.WeatherQuery) (weather.Observation, error) {
	lat, lon, err := p.coordinates(q)
	if err != nil {
		return weather.Observation{}, err
	}

	v := url.Values{}
	v.Set("latitude", lat)
	v.Set("longitude", lon)
	v.Set("current", "weather_code,temperature_2m")
	v.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	v.Set("timezone", "America/Sao_Paulo")
	v.Set("forecast_days", "1")

	var resp openMeteoResponse
	if err := p.fetcher.GetJSON(ctx, p.base+"?"+v.Encode(), &resp); err != nil {
		return weather.Observation{}, err
	}

	var days []weather.ForecastDay
	if d := resp.Daily; d != nil && len(d.Min) > 0 && len(d.Max) > 0 {
		days = append(days, weather.ForecastDay{Min: d.Min[0], Max: d.Max[0]})
	}
	lo, hi, err := weather.MinMax(days)
	if err != nil {
		return weather.Observation{}, err
	}

	place := strings.TrimSpace(q.Place)
	if place == "" {
		place = p.defaultPlace
	}

	return weather.Observation{
		Place:     place,
		Condition: weather.ConditionFromCode(resp.code()),
		Min:       lo,
		Max:       hi,
	}, nil
}

// code prefers the current observation and falls back to the day's code.
func (r openMeteoResponse) code() int {
	if r.Current != nil && r.Current.WeatherCode != nil {
		return *r.Current.WeatherCode
	}
	if r.Daily != nil && len(r.Daily.WeatherCode) > 0 && r.Daily.WeatherCode[0] != nil {
		return *r.Daily.WeatherCode[0]
	}
	return -1
}

func (p *OpenMeteo) coordinates(q domain.WeatherQuery) (string, string, error) {
	lat, lon := strings.TrimSpace(q.Lat), strings.TrimSpace(q.Lon)
	if lat == "" && lon == "" {
		lat, lon = p.defaultLat, p.defaultLon
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil || la < -90 || la > 90 {
		return "", "", fmt.Errorf("%w: lat=%q", domain.ErrInvalidCoordinates, lat)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil || lo < -180 || lo > 180 {
		return "", "", fmt.Errorf("%w: lon=%q", domain.ErrInvalidCoordinates, lon)
	}
	return strconv.FormatFloat(la, 'f', -1, 64), strconv.FormatFloat(lo, 'f', -1, 64), nil
}
