// sim/performance.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
)

// Mission time model. Each effect is expressed as a loss (or, for a
// tailwind, a gain) in speed relative to the candidate's max speed.

const (
	// Altitude above which thinner air starts to cost speed.
	AltitudePenaltyFloor = 10000
	// Reference empty weight for the wind effect; heavier aircraft are
	// pushed around less.
	WindReferenceWeight = 18000
)

// WeatherCoefficient returns the fraction of max speed lost to the weather.
func WeatherCoefficient(w Weather) float64 {
	switch w {
	case Summer:
		return 0.05
	case Winter:
		return 0
	default:
		return 0.1
	}
}

// AltitudeCoefficient returns the fraction of max speed lost at the
// given altitude: nothing below AltitudePenaltyFloor, then 1% per 1000
// units above it.
func AltitudeCoefficient(altitude int) float64 {
	if altitude < AltitudePenaltyFloor {
		return 0
	}
	return float64(altitude-AltitudePenaltyFloor) / 100000
}

// DirectionOffset returns the wind bonus for the given wind direction and
// aircraft heading: +15 when they match, -25 when opposed, -5 for a
// crosswind.
func DirectionOffset(wind, heading Direction) int {
	if wind == heading {
		return 15
	} else if wind.Opposite() == heading {
		return -25
	}
	return -5
}

// PayloadCoefficient returns the speed lost to carrying the given number
// of people: 2% of max speed per person.
func PayloadCoefficient(maxSpeed float64, people int) float64 {
	return maxSpeed * float64(2*people) / 100
}

// WindSpeedCoefficient returns the speed gained (or lost, if negative)
// from the wind, scaled inversely by the aircraft's empty weight.
func WindSpeedCoefficient(offset int, windSpeed int, emptyWeight float64) float64 {
	return (float64(offset*windSpeed) / 100) / (emptyWeight / WindReferenceWeight) * 2
}

// NumTrips returns the number of trips needed to carry demand people with
// the given per-trip capacity.
func NumTrips(capacity, demand int) int {
	if demand <= 0 {
		return 0
	}
	return (demand + capacity - 1) / capacity
}

// EffectiveSpeed returns the candidate's speed under the given condition.
// It may be zero or negative for an overloaded aircraft.
func EffectiveSpeed(c *Candidate, cond Condition) float64 {
	payload := PayloadCoefficient(c.MaxSpeed, cond.NumberOfPeople)
	altitude := AltitudeCoefficient(cond.Altitude) * c.MaxSpeed
	weather := WeatherCoefficient(cond.Weather) * c.MaxSpeed
	offset := DirectionOffset(cond.WindDirection, cond.Heading)
	wind := WindSpeedCoefficient(offset, cond.WindSpeed, c.EmptyWeight)

	return c.MaxSpeed - payload - altitude - weather + wind
}

// TimeToComplete returns the time the candidate needs to fly the mission
// described by cond, including repeated trips when the number of people
// exceeds its capacity. ErrInvalidModelState is returned when the
// candidate's effective speed is not positive.
func TimeToComplete(c *Candidate, cond Condition) (float64, error) {
	t, speed, ok := missionTime(c, cond)
	if !ok {
		return 0, fmt.Errorf("%s: %w (%.2f) for %s", c.Name, ErrInvalidModelState, speed, cond)
	}
	return t, nil
}

// missionTime is TimeToComplete without the error allocation, for the
// per-trial scoring loop.
func missionTime(c *Candidate, cond Condition) (t, speed float64, ok bool) {
	speed = EffectiveSpeed(c, cond)
	if speed <= 0 {
		return 0, speed, false
	}

	t = float64(cond.Distance) / speed
	// A single trip is already one full traversal.
	if trips := NumTrips(c.MaxPeople, cond.NumberOfPeople); trips > 1 {
		t *= float64(trips)
	}
	return t, speed, true
}
