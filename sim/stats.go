// sim/stats.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"math"
)

// Standing is one candidate's result for a batch of trials.
type Standing struct {
	Name          string
	Wins          int
	WinPercentage float64
	DNFs          int
}

// Tally accumulates trial outcomes locally (e.g., in a worker goroutine)
// so that they can be merged into an Aggregator once all trials are done.
// Wins and DNFs are indexed like the Aggregator's candidates.
type Tally struct {
	Wins     []int
	DNFs     []int
	NoWinner int
}

// Trials returns the number of trials recorded in the tally.
func (t Tally) Trials() int {
	n := t.NoWinner
	for _, w := range t.Wins {
		n += w
	}
	return n
}

// Aggregator maintains the win counts of a fixed set of candidates. It
// isn't safe for concurrent use; concurrent trials should record into
// separate Tallies and Merge them afterward.
type Aggregator struct {
	candidates []*Candidate
	index      map[string]int
	// NoWinner counts trials in which no candidate could finish.
	NoWinner int
}

func NewAggregator(cands []*Candidate) *Aggregator {
	a := &Aggregator{
		candidates: cands,
		index:      make(map[string]int),
	}
	for i, c := range cands {
		a.index[c.Name] = i
	}
	return a
}

func (a *Aggregator) lookup(name string) (*Candidate, error) {
	if i, ok := a.index[name]; ok {
		return a.candidates[i], nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownCandidate)
}

// Record credits the named candidate with a win.
func (a *Aggregator) Record(name string) error {
	c, err := a.lookup(name)
	if err != nil {
		return err
	}
	c.WinCount++
	return nil
}

// RecordDNF notes that the named candidate couldn't finish a trial.
func (a *Aggregator) RecordDNF(name string) error {
	c, err := a.lookup(name)
	if err != nil {
		return err
	}
	c.DNFCount++
	return nil
}

func (a *Aggregator) RecordNoWinner() {
	a.NoWinner++
}

// NewTally returns an empty Tally sized for the aggregator's candidates.
func (a *Aggregator) NewTally() Tally {
	return Tally{
		Wins: make([]int, len(a.candidates)),
		DNFs: make([]int, len(a.candidates)),
	}
}

// Merge adds the counts in t to the aggregator.
func (a *Aggregator) Merge(t Tally) error {
	if len(t.Wins) != len(a.candidates) || len(t.DNFs) != len(a.candidates) {
		return fmt.Errorf("%w: %d candidates, tally for %d", ErrTallyMismatch, len(a.candidates), len(t.Wins))
	}
	for i, c := range a.candidates {
		c.WinCount += t.Wins[i]
		c.DNFCount += t.DNFs[i]
	}
	a.NoWinner += t.NoWinner
	return nil
}

// ResetAll zeroes all of the counts.
func (a *Aggregator) ResetAll() {
	for _, c := range a.candidates {
		c.WinCount = 0
		c.DNFCount = 0
	}
	a.NoWinner = 0
}

// Report returns the standings of all candidates, in the order they were
// given to NewAggregator, with win percentages relative to totalTrials
// rounded to two decimal places.
func (a *Aggregator) Report(totalTrials int) ([]Standing, error) {
	if totalTrials <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTrialCount, totalTrials)
	}

	standings := make([]Standing, len(a.candidates))
	for i, c := range a.candidates {
		standings[i] = Standing{
			Name:          c.Name,
			Wins:          c.WinCount,
			WinPercentage: WinPercentage(c.WinCount, totalTrials),
			DNFs:          c.DNFCount,
		}
	}
	return standings, nil
}

// WinPercentage returns 100*wins/trials rounded to two decimal places.
func WinPercentage(wins, trials int) float64 {
	return math.Round(float64(wins)/float64(trials)*100*100) / 100
}
