// report/report.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package report renders the results of simulation batches and saves
// them to archives that can be displayed again later.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/util"
)

var ErrUnknownFormat = errors.New("Unknown report format")

const rule = "-----------------------------------------------------------------------"

// WriteText writes a human-readable summary of the batch: the scenario's
// sampling ranges followed by a table of each candidate's wins.
func WriteText(w io.Writer, rep sim.BatchReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nScenario %q looks as follows -\n", rep.Scenario.Name)
	fmt.Fprintf(&b, "%s\n", rep.Scenario)
	fmt.Fprintf(&b, "\n%d trials (seed %d, %d workers, %s)\n", rep.Trials, rep.Seed, rep.Workers,
		rep.Elapsed.Round(time.Millisecond))

	fmt.Fprintln(&b, "\nThe helicopter statistics are -")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%25s %10s %15s %% %12s\n", "Name", "Wins", "Win Percentage", "Did Not Finish")
	fmt.Fprintln(&b, rule)
	for _, s := range rep.Standings {
		fmt.Fprintf(&b, "%25s %10d %15.2f   %12d\n", s.Name, s.Wins, s.WinPercentage, s.DNFs)
	}
	fmt.Fprintln(&b, rule)

	if rep.NoWinnerTrials > 0 {
		fmt.Fprintf(&b, "%d trials (%.2f%%) had no candidate able to finish\n", rep.NoWinnerTrials,
			sim.WinPercentage(rep.NoWinnerTrials, rep.Trials))
	}
	if leader, ok := rep.Leader(); ok && leader.Wins > 0 {
		fmt.Fprintf(&b, "Most wins: %s (%.2f%%)\n", leader.Name, leader.WinPercentage)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep sim.BatchReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(rep)
}

// Writer returns the report writer for the given format name, "text" or
// "json".
func Writer(format string) (func(io.Writer, sim.BatchReport) error, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return WriteText, nil
	case "json":
		return WriteJSON, nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

///////////////////////////////////////////////////////////////////////////
// Archives

// ArchiveVersion is bumped whenever BatchReport changes incompatibly.
const ArchiveVersion = 1

var ErrArchiveVersion = errors.New("Unsupported archive version")

type Archive struct {
	Version int
	Reports []sim.BatchReport
}

// SaveArchive writes the reports to path as zstd-compressed msgpack.
func SaveArchive(path string, reports []sim.BatchReport) error {
	return util.StoreObject(path, Archive{Version: ArchiveVersion, Reports: reports})
}

// LoadArchive reads reports written by SaveArchive.
func LoadArchive(path string) ([]sim.BatchReport, error) {
	var a Archive
	if err := util.RetrieveObject(path, &a); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if a.Version != ArchiveVersion {
		return nil, fmt.Errorf("%s: %w %d", path, ErrArchiveVersion, a.Version)
	}
	return a.Reports, nil
}
