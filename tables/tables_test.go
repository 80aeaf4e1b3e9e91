// tables/tables_test.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package tables

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/util"
)

const fleetCSV = `Name,Empty_Weight(lbs),Max_Speed(mph),Max_Distance(miles),Max_no_of_people
Kamov KA-52,10000,180,450,20
Mil Mi-8,15000,155,280,24
# retired
Eurocopter EC135,3300,160,395,6.0
`

const fleetJSON = `[
  {"name": "Kamov KA-52", "empty_weight": 10000, "max_speed": 180, "max_distance": 450, "max_people": 20},
  {"name": "Mil Mi-8", "empty_weight": 15000, "max_speed": 155, "max_distance": 280, "max_people": 24},
  {"name": "Eurocopter EC135", "empty_weight": 3300, "max_speed": 160, "max_distance": 395, "max_people": 6}
]`

const scenariosCSV = `Weather_Tendency,Distance,Number_of_People,MinAltitude,MaxAltitude,Wind_Speed
5-1-2,300,30,,,
1-1-1,,,12000,,40.0
0-3-1,150,NaN,2000,9000,10
`

func intPtr(v int) *int { return &v }

func TestReadCandidatesCSV(t *testing.T) {
	recs, err := ReadCandidatesCSV(strings.NewReader(fleetCSV))
	if err != nil {
		t.Fatal(err)
	}
	want := []sim.CandidateRecord{
		{Name: "Kamov KA-52", EmptyWeight: 10000, MaxSpeed: 180, MaxDistance: 450, MaxPeople: 20},
		{Name: "Mil Mi-8", EmptyWeight: 15000, MaxSpeed: 155, MaxDistance: 280, MaxPeople: 24},
		{Name: "Eurocopter EC135", EmptyWeight: 3300, MaxSpeed: 160, MaxDistance: 395, MaxPeople: 6},
	}
	if !slices.Equal(recs, want) {
		t.Errorf("got %+v, expected %+v", recs, want)
	}

	jrecs, err := ReadCandidatesJSON(strings.NewReader(fleetJSON))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(recs, jrecs) {
		t.Errorf("CSV and JSON tables differ: %+v vs %+v", recs, jrecs)
	}
}

func TestReadCandidatesCSVErrors(t *testing.T) {
	_, err := ReadCandidatesCSV(strings.NewReader("Name,MaxSpeed\nKA-52,180\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	_, err = ReadCandidatesCSV(strings.NewReader(
		"Name,EmptyWeight,MaxSpeed,MaxDistance,MaxPeople\nKA-52,heavy,180,450,20.5\n"))
	if !errors.Is(err, ErrMalformedNumber) || !errors.Is(err, ErrNonIntegralNumber) {
		t.Errorf("expected malformed and non-integral number errors, got %v", err)
	}
	if !errors.Is(err, sim.ErrParse) {
		t.Errorf("expected a parse error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "row 2") {
		t.Errorf("error lacks row context: %v", err)
	}

	_, err = ReadCandidatesCSV(strings.NewReader("Name,EmptyWeight\nKA-52,1,2\n"))
	if !errors.Is(err, sim.ErrParse) {
		t.Errorf("expected parse error for ragged row, got %v", err)
	}
}

func TestReadScenariosCSV(t *testing.T) {
	recs, err := ReadScenariosCSV(strings.NewReader(scenariosCSV))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(recs))
	}

	eq := func(a, b *int) bool { return (a == nil && b == nil) || (a != nil && b != nil && *a == *b) }
	for i, want := range []sim.ScenarioRecord{
		{WeatherTendency: "5-1-2", Distance: intPtr(300), NumberOfPeople: intPtr(30)},
		{WeatherTendency: "1-1-1", MinAltitude: intPtr(12000), WindSpeed: intPtr(40)},
		{WeatherTendency: "0-3-1", Distance: intPtr(150), MinAltitude: intPtr(2000), MaxAltitude: intPtr(9000),
			WindSpeed: intPtr(10)},
	} {
		got := recs[i]
		if got.WeatherTendency != want.WeatherTendency || !eq(got.Distance, want.Distance) ||
			!eq(got.NumberOfPeople, want.NumberOfPeople) || !eq(got.MinAltitude, want.MinAltitude) ||
			!eq(got.MaxAltitude, want.MaxAltitude) || !eq(got.WindSpeed, want.WindSpeed) {
			t.Errorf("row %d: got %+v, expected %+v", i, got, want)
		}
	}

	specs, err := sim.LoadScenarios(recs)
	if err != nil {
		t.Fatal(err)
	}
	if specs[2].WeatherTendency != (sim.WeatherTendency{0, 3, 1}) {
		t.Errorf("unexpected tendency %v", specs[2].WeatherTendency)
	}
}

func TestReadScenariosCSVErrors(t *testing.T) {
	_, err := ReadScenariosCSV(strings.NewReader("Distance\n100\n"))
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("expected ErrMissingColumn, got %v", err)
	}

	_, err = ReadScenariosCSV(strings.NewReader("WeatherTendency,Distance\n1-x-1,far\n"))
	if !errors.Is(err, sim.ErrMalformedTendency) || !errors.Is(err, ErrMalformedNumber) {
		t.Errorf("expected tendency and number errors, got %v", err)
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, contents string, compress bool) string {
		b := []byte(contents)
		if compress {
			var err error
			if b, err = util.CompressZstd(b); err != nil {
				t.Fatal(err)
			}
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, b, 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	csvPath := write("fleet.csv", fleetCSV, false)
	jsonPath := write("fleet.json.zst", fleetJSON, true)
	scenPath := write("conditions.csv.zst", scenariosCSV, true)
	badPath := write("fleet.xlsx", "", false)

	a, err := LoadCandidatesFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	b, err := LoadCandidatesFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a, b) {
		t.Errorf("CSV and compressed JSON differ: %+v vs %+v", a, b)
	}

	if _, err := LoadCandidatesFile(badPath); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := LoadScenariosFile(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	sc, err := LoadContext(csvPath, scenPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Candidates) != 3 || len(sc.Scenarios) != 3 {
		t.Errorf("loaded %d candidates, %d scenarios", len(sc.Candidates), len(sc.Scenarios))
	}

	badScen := write("bad.csv", "WeatherTendency,MinAltitude,MaxAltitude\n1-1-1,9000,100\n", false)
	if _, err := LoadContext(csvPath, badScen); !errors.Is(err, sim.ErrInvertedBounds) {
		t.Errorf("expected ErrInvertedBounds, got %v", err)
	}
}

func TestColumnKey(t *testing.T) {
	for in, want := range map[string]string{
		"Empty_Weight(lbs)": "emptyweight",
		"Max_no_of_people":  "maxpeople",
		"  Max Speed (mph)": "maxspeed",
		"Weather_Tendency":  "weathertendency",
		"Number_of_People":  "numberofpeople",
		"Scenario":          "name",
	} {
		if got := columnKey(in); got != want {
			t.Errorf("%q: got %q, expected %q", in, got, want)
		}
	}
}
