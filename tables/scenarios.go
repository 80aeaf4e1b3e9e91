// tables/scenarios.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package tables

import (
	"fmt"
	"io"

	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/util"
)

// ReadScenariosCSV reads a scenario table. Only the WeatherTendency column
// is required; Name, Distance, NumberOfPeople, MinAltitude, MaxAltitude
// and WindSpeed are optional and empty cells leave the bound unspecified.
func ReadScenariosCSV(r io.Reader) ([]sim.ScenarioRecord, error) {
	var e util.ErrorLogger
	recs := readScenariosCSV(r, &e)
	return recs, e.Err()
}

func readScenariosCSV(r io.Reader, e *util.ErrorLogger) []sim.ScenarioRecord {
	defer e.CheckDepth(e.CurrentDepth())

	t, ok := readCSV(r, []string{"weathertendency"}, e)
	if !ok {
		return nil
	}

	var recs []sim.ScenarioRecord
	for i, row := range t.rows {
		e.Push(fmt.Sprintf("row %d", i+2))

		rec := sim.ScenarioRecord{
			Name:            t.cell(row, "name"),
			WeatherTendency: t.cell(row, "weathertendency"),
		}
		if rec.WeatherTendency != "" {
			// Check it here so that the error has the row context.
			if _, err := sim.ParseWeatherTendency(rec.WeatherTendency); err != nil {
				e.Error(err)
			}
		}

		for _, f := range []struct {
			key string
			v   **int
		}{
			{"distance", &rec.Distance},
			{"numberofpeople", &rec.NumberOfPeople},
			{"minaltitude", &rec.MinAltitude},
			{"maxaltitude", &rec.MaxAltitude},
			{"windspeed", &rec.WindSpeed},
		} {
			var err error
			if *f.v, err = parseOptionalInt(t.cell(row, f.key)); err != nil {
				e.Error(fmt.Errorf("%s: %w", f.key, err))
			}
		}

		recs = append(recs, rec)
		e.Pop()
	}
	return recs
}

// ReadScenariosJSON reads a JSON array of scenario records.
func ReadScenariosJSON(r io.Reader) ([]sim.ScenarioRecord, error) {
	var recs []sim.ScenarioRecord
	if err := util.UnmarshalJSON(r, &recs); err != nil {
		return nil, fmt.Errorf("%w: %v", sim.ErrParse, err)
	}
	return recs, nil
}

// LoadScenariosFile reads the scenario table at path, choosing the format
// from the file extension.
func LoadScenariosFile(path string) ([]sim.ScenarioRecord, error) {
	var e util.ErrorLogger
	e.Push(path)

	r, err := util.OpenFile(path)
	if err != nil {
		return nil, err
	}

	var recs []sim.ScenarioRecord
	switch ext := util.UncompressedExt(path); ext {
	case ".csv":
		recs = readScenariosCSV(r, &e)
	case ".json":
		if recs, err = ReadScenariosJSON(r); err != nil {
			e.Error(err)
		}
	default:
		e.Error(fmt.Errorf("%q: %w", ext, ErrUnknownFormat))
	}

	e.Pop()
	return recs, e.Err()
}

// LoadContext loads both tables and validates them into a
// SimulationContext.
func LoadContext(candidatesPath, scenariosPath string) (*sim.SimulationContext, error) {
	cands, err := LoadCandidatesFile(candidatesPath)
	if err != nil {
		return nil, err
	}
	scens, err := LoadScenariosFile(scenariosPath)
	if err != nil {
		return nil, err
	}

	sc, err := sim.NewSimulationContext(cands, scens)
	if err != nil {
		return nil, fmt.Errorf("%s, %s:\n%w", candidatesPath, scenariosPath, err)
	}
	return sc, nil
}
