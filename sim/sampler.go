// sim/sampler.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/mmp/airrescue/rand"
)

// Default sampling ranges for unspecified scenario bounds.
const (
	DefaultMaxDistance  = 400
	DefaultMaxPeople    = 10
	DefaultMinAltitude  = 1000
	DefaultMaxAltitude  = 25000
	DefaultMaxWindSpeed = 25
)

// Condition is a single sampled trial: the environment that every
// candidate is scored against.
type Condition struct {
	Distance       int
	NumberOfPeople int
	Altitude       int
	WindSpeed      int
	WindDirection  Direction
	Heading        Direction
	Weather        Weather
}

func (c Condition) String() string {
	return fmt.Sprintf("distance %d, %d people, altitude %d, wind %d from %s, heading %s, %s",
		c.Distance, c.NumberOfPeople, c.Altitude, c.WindSpeed, c.WindDirection, c.Heading, c.Weather)
}

// Bounds is an inclusive integer range.
type Bounds struct {
	Lo, Hi int
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]", b.Lo, b.Hi)
}

// Sampler draws Conditions for a single scenario. Its bounds are resolved
// and validated once at construction so that drawing can't fail.
type Sampler struct {
	Distance  Bounds
	People    Bounds
	Altitude  Bounds
	WindSpeed Bounds
	Tendency  WeatherTendency
}

// NewSampler resolves the scenario's bounds, substituting defaults for
// unspecified ones. For altitude, only the missing side is filled in when
// one of the two bounds is given.
func NewSampler(spec ScenarioSpec) (*Sampler, error) {
	if err := spec.WeatherTendency.Validate(); err != nil {
		return nil, err
	}

	upper := func(what string, b *int, def int) (Bounds, error) {
		if b == nil {
			return Bounds{1, def}, nil
		}
		if *b < 1 {
			return Bounds{}, fmt.Errorf("%w: %s upper bound %d is less than 1", ErrInvalidBound, what, *b)
		}
		return Bounds{1, *b}, nil
	}

	s := &Sampler{Tendency: spec.WeatherTendency}
	var err error
	if s.Distance, err = upper("distance", spec.MaxDistance, DefaultMaxDistance); err != nil {
		return nil, err
	}
	if s.People, err = upper("number of people", spec.MaxPeople, DefaultMaxPeople); err != nil {
		return nil, err
	}
	if s.WindSpeed, err = upper("wind speed", spec.MaxWindSpeed, DefaultMaxWindSpeed); err != nil {
		return nil, err
	}

	s.Altitude = Bounds{DefaultMinAltitude, DefaultMaxAltitude}
	if spec.MinAltitude != nil {
		s.Altitude.Lo = *spec.MinAltitude
	}
	if spec.MaxAltitude != nil {
		s.Altitude.Hi = *spec.MaxAltitude
	}
	if s.Altitude.Lo > s.Altitude.Hi {
		return nil, fmt.Errorf("%w: altitude %s", ErrInvertedBounds, s.Altitude)
	}

	return s, nil
}

// Sample draws a Condition. Each field is an independent uniform draw
// except for the weather, which follows the scenario's tendency.
func (s *Sampler) Sample(r *rand.Rand) Condition {
	return Condition{
		Distance:       r.IntRange(s.Distance.Lo, s.Distance.Hi),
		NumberOfPeople: r.IntRange(s.People.Lo, s.People.Hi),
		Altitude:       r.IntRange(s.Altitude.Lo, s.Altitude.Hi),
		WindSpeed:      r.IntRange(s.WindSpeed.Lo, s.WindSpeed.Hi),
		WindDirection:  rand.SampleSlice(r, AllDirections[:]),
		Heading:        rand.SampleSlice(r, AllDirections[:]),
		Weather:        s.SampleWeather(r),
	}
}

// SampleWeather draws n uniformly from [1,sum of weights] and maps it onto
// consecutive runs of summer, winter, and rainy values.
func (s *Sampler) SampleWeather(r *rand.Rand) Weather {
	n := r.IntRange(1, s.Tendency.Sum())
	if n <= s.Tendency[0] {
		return Summer
	} else if n <= s.Tendency[0]+s.Tendency[1] {
		return Winter
	}
	return Rainy
}

// Sample is a convenience wrapper that draws a single Condition for spec.
func Sample(r *rand.Rand, spec ScenarioSpec) (Condition, error) {
	s, err := NewSampler(spec)
	if err != nil {
		return Condition{}, err
	}
	return s.Sample(r), nil
}
