// Package weather normalizes provider payloads into a short condition label
// and the day's temperature range.
package weather

import (
	"strings"

	"painel-proxy/internal/domain"
)

// UnknownCondition is shown for codes outside the table.
const UnknownCondition = "—"

// ConditionFromCode maps a WMO weather interpretation code to a label.
func ConditionFromCode(code int) string {
	switch code {
	case 0:
		return "Céu limpo"
	case 1, 2:
		return "Poucas nuvens"
	case 3:
		return "Nublado"
	case 45, 48:
		return "Neblina"
	case 51, 53, 55:
		return "Garoa"
	case 56, 57:
		return "Garoa congelante"
	case 61, 63, 65:
		return "Chuva"
	case 66, 67:
		return "Chuva congelante"
	case 71, 73, 75, 77:
		return "Neve"
	case 80, 81, 82:
		return "Pancadas de chuva"
	case 85, 86:
		return "Pancadas de neve"
	case 95, 96, 99:
		return "Trovoadas"
	default:
		return UnknownCondition
	}
}

// FirstText returns the first non-blank value produced by the accessors, tried
// in order. Providers list their candidate fields once, next to the payload type.
func FirstText[T any](v T, accessors ...func(T) string) string {
	for _, get := range accessors {
		if s := strings.TrimSpace(get(v)); s != "" {
			return s
		}
	}
	return ""
}

// ForecastDay covers every per-day temperature shape seen from providers.
type ForecastDay struct {
	Temperature *struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	} `json:"temperature"`
	Min            *float64 `json:"min"`
	Max            *float64 `json:"max"`
	TemperatureMin *float64 `json:"temperature_min"`
	TemperatureMax *float64 `json:"temperature_max"`
}

type rangeAccessor func(ForecastDay) (lo, hi *float64)

var rangeAccessors = []rangeAccessor{
	func(d ForecastDay) (*float64, *float64) {
		if d.Temperature == nil {
			return nil, nil
		}
		return d.Temperature.Min, d.Temperature.Max
	},
	func(d ForecastDay) (*float64, *float64) { return d.Min, d.Max },
	func(d ForecastDay) (*float64, *float64) { return d.TemperatureMin, d.TemperatureMax },
}

// MinMax reads the temperature range of the first forecast day. A missing
// bound is an error; it is never defaulted to zero.
func MinMax(days []ForecastDay) (lo, hi float64, err error) {
	if len(days) == 0 {
		return 0, 0, domain.ErrIncompleteForecast
	}

	var minP, maxP *float64
	for _, get := range rangeAccessors {
		l, h := get(days[0])
		if minP == nil {
			minP = l
		}
		if maxP == nil {
			maxP = h
		}
	}

	if minP == nil || maxP == nil {
		return 0, 0, domain.ErrIncompleteForecast
	}
	return *minP, *maxP, nil
}

// Observation is a provider's normalized answer before it becomes a reading.
type Observation struct {
	Place     string
	Condition string
	Min       float64
	Max       float64
}
