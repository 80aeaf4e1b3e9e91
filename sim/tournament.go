// sim/tournament.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"math"

	"github.com/mmp/airrescue/util"
)

// Winner returns the name of the candidate with the smallest time. Exact
// ties go to the name that sorts first. Candidates whose time is +Inf or
// NaN couldn't finish and never win; false is returned if nobody
// finished.
func Winner(times map[string]float64) (string, bool) {
	best, found := "", false
	// Visiting names in order means a strict comparison keeps the first
	// name on ties.
	for _, name := range util.SortedMapKeys(times) {
		if t := times[name]; finished(t) && (!found || t < times[best]) {
			best, found = name, true
		}
	}
	return best, found
}

func finished(t float64) bool {
	return !math.IsNaN(t) && !math.IsInf(t, 1)
}

// winnerIndex is the slice form of Winner used in the trial loop; times[i]
// is the time for cands[i].
func winnerIndex(cands []*Candidate, times []float64) (int, bool) {
	best := -1
	for i, t := range times {
		if !finished(t) {
			continue
		}
		if best == -1 || t < times[best] || (t == times[best] && cands[i].Name < cands[best].Name) {
			best = i
		}
	}
	return best, best != -1
}
