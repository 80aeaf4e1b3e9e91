// sim/candidate.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"math"

	"github.com/mmp/airrescue/util"
)

// Candidate is an aircraft design competing in the tournament. Only
// WinCount and DNFCount change during a simulation; both are reset at the
// start of each scenario's batch of trials.
type Candidate struct {
	Name        string
	EmptyWeight float64
	MaxSpeed    float64
	// MaxDistance is part of the design profile but doesn't enter into
	// the mission time.
	MaxDistance float64
	MaxPeople   int

	WinCount int
	// DNFCount counts trials in the current batch where the candidate's
	// effective speed was non-positive.
	DNFCount int
}

// CandidateRecord is a row of the candidate table as loaded from input.
type CandidateRecord struct {
	Name        string  `json:"name"`
	EmptyWeight float64 `json:"empty_weight"`
	MaxSpeed    float64 `json:"max_speed"`
	MaxDistance float64 `json:"max_distance"`
	MaxPeople   int     `json:"max_people"`
}

func (c *Candidate) String() string {
	return fmt.Sprintf("%s (empty weight %.0f, max speed %.0f, max distance %.0f, %d people)",
		c.Name, c.EmptyWeight, c.MaxSpeed, c.MaxDistance, c.MaxPeople)
}

func (r CandidateRecord) validate(e *util.ErrorLogger) {
	positive := func(what string, v float64) {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			e.Error(fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidCandidate, what, v))
		}
	}

	if r.Name == "" {
		e.Error(fmt.Errorf("%w: missing name", ErrInvalidCandidate))
	}
	positive("empty weight", r.EmptyWeight)
	positive("max speed", r.MaxSpeed)
	positive("max distance", r.MaxDistance)
	if r.MaxPeople <= 0 {
		e.Error(fmt.Errorf("%w: max people must be positive, got %d", ErrInvalidCandidate, r.MaxPeople))
	}
}

// LoadCandidates validates the given records and returns the corresponding
// Candidates in input order. All problems are reported together.
func LoadCandidates(records []CandidateRecord) ([]*Candidate, error) {
	var e util.ErrorLogger
	defer e.CheckDepth(e.CurrentDepth())

	if len(records) == 0 {
		return nil, ErrEmptyFleet
	}

	seen := make(map[string]int)
	var cands []*Candidate
	for i, r := range records {
		e.Push(fmt.Sprintf("candidate %d (%s)", i+1, r.Name))

		r.validate(&e)
		if prev, ok := seen[r.Name]; ok && r.Name != "" {
			e.Error(fmt.Errorf("%w: also used by candidate %d", ErrDuplicateCandidate, prev+1))
		}
		seen[r.Name] = i

		cands = append(cands, &Candidate{
			Name:        r.Name,
			EmptyWeight: r.EmptyWeight,
			MaxSpeed:    r.MaxSpeed,
			MaxDistance: r.MaxDistance,
			MaxPeople:   r.MaxPeople,
		})

		e.Pop()
	}

	if err := e.Err(); err != nil {
		return nil, err
	}
	return cands, nil
}
