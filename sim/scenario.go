// sim/scenario.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmp/airrescue/util"
)

type Weather int

const (
	Summer Weather = iota
	Winter
	Rainy
)

func (w Weather) String() string {
	switch w {
	case Summer:
		return "Summer"
	case Winter:
		return "Winter"
	case Rainy:
		return "Rainy"
	default:
		return "Weather(" + strconv.Itoa(int(w)) + ")"
	}
}

type Direction int

const (
	North Direction = iota
	South
	East
	West
)

var AllDirections = [...]Direction{North, South, West, East}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	default:
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
}

// Opposite returns the direction 180 degrees from d.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// WeatherTendency holds the relative weights of summer, winter, and rainy
// weather, in that order.
type WeatherTendency [3]int

// DefaultWeatherTendency is used when a scenario doesn't specify one.
var DefaultWeatherTendency = WeatherTendency{1, 1, 1}

func (t WeatherTendency) Sum() int {
	return t[0] + t[1] + t[2]
}

func (t WeatherTendency) String() string {
	return fmt.Sprintf("%d-%d-%d", t[0], t[1], t[2])
}

func (t WeatherTendency) Validate() error {
	for i, w := range t {
		if w < 0 {
			return fmt.Errorf("%w: %s weight %d is negative", ErrInvalidWeather, Weather(i), w)
		}
	}
	if t.Sum() <= 0 {
		return fmt.Errorf("%w: weights %s sum to zero", ErrInvalidWeather, t)
	}
	return nil
}

// ParseWeatherTendency parses tendencies of the form "<summer>-<winter>-<rainy>",
// e.g. "5-1-2". The result is not validated beyond being well-formed.
func ParseWeatherTendency(s string) (WeatherTendency, error) {
	var t WeatherTendency
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return t, fmt.Errorf("%q: %w: expected three dash-separated weights", s, ErrMalformedTendency)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return t, fmt.Errorf("%q: %w: %q is not an integer", s, ErrMalformedTendency, p)
		}
		t[i] = v
	}
	return t, nil
}

// ScenarioSpec gives the ranges that trial Conditions are sampled from.
// A nil bound is unspecified and takes the default range; see
// NewSampler.
type ScenarioSpec struct {
	Name            string
	WeatherTendency WeatherTendency
	MaxDistance     *int
	MaxPeople       *int
	MinAltitude     *int
	MaxAltitude     *int
	MaxWindSpeed    *int
}

// ScenarioRecord is a row of the scenario table as loaded from input.
type ScenarioRecord struct {
	Name            string `json:"name,omitempty"`
	WeatherTendency string `json:"weather_tendency"`
	Distance        *int   `json:"distance,omitempty"`
	NumberOfPeople  *int   `json:"number_of_people,omitempty"`
	MinAltitude     *int   `json:"min_altitude,omitempty"`
	MaxAltitude     *int   `json:"max_altitude,omitempty"`
	WindSpeed       *int   `json:"wind_speed,omitempty"`
}

func (s ScenarioSpec) String() string {
	bound := func(b *int) string {
		if b == nil {
			return "default"
		}
		return strconv.Itoa(*b)
	}
	return fmt.Sprintf("Weather Tendency - %s, Max distance - %s, Max number of people - %s, "+
		"Minimum Altitude of location - %s, Maximum Altitude of location - %s, Max Wind Speed of location - %s",
		s.WeatherTendency, bound(s.MaxDistance), bound(s.MaxPeople), bound(s.MinAltitude),
		bound(s.MaxAltitude), bound(s.MaxWindSpeed))
}

// Validate checks that conditions can be sampled from the scenario.
func (s ScenarioSpec) Validate() error {
	_, err := NewSampler(s)
	return err
}

// LoadScenarios parses and validates the given records, returning the
// corresponding ScenarioSpecs in input order. An empty tendency string
// gives equal weights to all three kinds of weather.
func LoadScenarios(records []ScenarioRecord) ([]ScenarioSpec, error) {
	var e util.ErrorLogger
	defer e.CheckDepth(e.CurrentDepth())

	if len(records) == 0 {
		return nil, ErrNoScenarios
	}

	var specs []ScenarioSpec
	for i, r := range records {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("scenario-%d", i+1)
		}
		e.Push(name)

		spec := ScenarioSpec{
			Name:            name,
			WeatherTendency: DefaultWeatherTendency,
			MaxDistance:     r.Distance,
			MaxPeople:       r.NumberOfPeople,
			MinAltitude:     r.MinAltitude,
			MaxAltitude:     r.MaxAltitude,
			MaxWindSpeed:    r.WindSpeed,
		}
		if strings.TrimSpace(r.WeatherTendency) != "" {
			if t, err := ParseWeatherTendency(r.WeatherTendency); err != nil {
				e.Error(err)
			} else {
				spec.WeatherTendency = t
			}
		}
		if err := spec.Validate(); err != nil {
			e.Error(err)
		}
		specs = append(specs, spec)

		e.Pop()
	}

	if err := e.Err(); err != nil {
		return nil, err
	}
	return specs, nil
}
