// tables/candidates.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package tables

import (
	"fmt"
	"io"

	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/util"
)

var candidateColumns = []string{"name", "emptyweight", "maxspeed", "maxdistance", "maxpeople"}

// ReadCandidatesCSV reads a candidate table with the columns Name,
// EmptyWeight, MaxSpeed, MaxDistance and MaxPeople.
func ReadCandidatesCSV(r io.Reader) ([]sim.CandidateRecord, error) {
	var e util.ErrorLogger
	recs := readCandidatesCSV(r, &e)
	return recs, e.Err()
}

func readCandidatesCSV(r io.Reader, e *util.ErrorLogger) []sim.CandidateRecord {
	defer e.CheckDepth(e.CurrentDepth())

	t, ok := readCSV(r, candidateColumns, e)
	if !ok {
		return nil
	}

	var recs []sim.CandidateRecord
	for i, row := range t.rows {
		e.Push(fmt.Sprintf("row %d", i+2)) // +1 for the header, +1 for 1-based

		rec := sim.CandidateRecord{Name: t.cell(row, "name")}
		for _, f := range []struct {
			key string
			v   *float64
		}{
			{"emptyweight", &rec.EmptyWeight},
			{"maxspeed", &rec.MaxSpeed},
			{"maxdistance", &rec.MaxDistance},
		} {
			var err error
			if *f.v, err = parseFloat(t.cell(row, f.key)); err != nil {
				e.Error(fmt.Errorf("%s: %w", f.key, err))
			}
		}
		var err error
		if rec.MaxPeople, err = parseInt(t.cell(row, "maxpeople")); err != nil {
			e.Error(fmt.Errorf("maxpeople: %w", err))
		}

		recs = append(recs, rec)
		e.Pop()
	}
	return recs
}

// ReadCandidatesJSON reads a JSON array of candidate records.
func ReadCandidatesJSON(r io.Reader) ([]sim.CandidateRecord, error) {
	var recs []sim.CandidateRecord
	if err := util.UnmarshalJSON(r, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrParse, err)
	}
	return recs, nil
}

// LoadCandidatesFile reads the candidate table at path, choosing the
// format from the file extension.
func LoadCandidatesFile(path string) ([]sim.CandidateRecord, error) {
	var e util.ErrorLogger
	e.Push(path)

	r, err := util.OpenFile(path)
	if err != nil {
		return nil, err
	}

	var recs []sim.CandidateRecord
	switch ext := util.UncompressedExt(path); ext {
	case ".csv":
		recs = readCandidatesCSV(r, &e)
	case ".json":
		if recs, err = ReadCandidatesJSON(r); err != nil {
			e.Error(err)
		}
	default:
		e.Error(fmt.Errorf("%q: %w", ext, ErrUnknownFormat))
	}

	e.Pop()
	return recs, e.Err()
}
