// cmd/airrescue/main_test.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmp/airrescue/report"
	"github.com/mmp/airrescue/sim"
)

func makeSession(t *testing.T, out *strings.Builder) *session {
	t.Helper()

	sc, err := sim.NewSimulationContext(
		[]sim.CandidateRecord{
			{Name: "Kamov KA-52", EmptyWeight: 10000, MaxSpeed: 180, MaxDistance: 450, MaxPeople: 20},
			{Name: "Eurocopter EC135", EmptyWeight: 3300, MaxSpeed: 160, MaxDistance: 395, MaxPeople: 6},
		},
		[]sim.ScenarioRecord{{WeatherTendency: "1-1-1"}, {WeatherTendency: "3-0-1"}})
	if err != nil {
		t.Fatal(err)
	}
	r, err := sim.NewRunner(sc, 2, 42, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &session{runner: r, write: report.WriteText, out: out}
}

func TestPromptTrials(t *testing.T) {
	var out strings.Builder
	sc := bufio.NewScanner(strings.NewReader("lots\n 2.5\n  17 \n"))

	n, ok := promptTrials(sc, &out)
	if !ok || n != 17 {
		t.Errorf("got (%d, %v), expected (17, true)", n, ok)
	}
	if c := strings.Count(out.String(), "Please enter the number of simulations"); c != 3 {
		t.Errorf("prompted %d times, expected 3", c)
	}
	if !strings.Contains(out.String(), `"lots" is not a whole number`) {
		t.Errorf("missing complaint about non-integer input: %q", out.String())
	}

	if _, ok := promptTrials(sc, &out); ok {
		t.Errorf("expected false at end of input")
	}
}

func TestInteractiveStopsOnNonPositive(t *testing.T) {
	for _, input := range []string{"0\n", "-5\n", "10\n0\n"} {
		var out strings.Builder
		s := makeSession(t, &out)

		if err := s.interactive(context.Background(), strings.NewReader(input)); err != nil {
			t.Errorf("%q: %v", input, err)
		}
		if !strings.Contains(out.String(), "You cannot have 0 or negative iterations!!!") {
			t.Errorf("%q: missing message in %q", input, out.String())
		}
	}
}

func TestInteractiveRunsEveryScenario(t *testing.T) {
	var out strings.Builder
	s := makeSession(t, &out)

	if err := s.interactive(context.Background(), strings.NewReader("100\n50\n")); err != nil {
		t.Fatal(err)
	}
	// Two rounds of two scenarios each.
	if len(s.reports) != 4 {
		t.Fatalf("got %d reports, expected 4", len(s.reports))
	}
	if s.reports[0].Trials != 100 || s.reports[3].Trials != 50 {
		t.Errorf("unexpected trial counts %d, %d", s.reports[0].Trials, s.reports[3].Trials)
	}
	if c := strings.Count(out.String(), "The helicopter statistics are"); c != 4 {
		t.Errorf("printed %d reports, expected 4", c)
	}
}

func TestRunTrialsWritesArchive(t *testing.T) {
	var out strings.Builder
	s := makeSession(t, &out)
	s.archive = filepath.Join(t.TempDir(), "results.msgpack.zst")

	if err := s.runTrials(context.Background(), 200); err != nil {
		t.Fatal(err)
	}
	reports, err := report.LoadArchive(s.archive)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Errorf("archive has %d reports, expected 2", len(reports))
	}
}

func TestConfigFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := os.WriteFile(path, []byte(`{"candidates": "a.csv", "scenarios": "b.csv", "seed": 7, "workers": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("candidates", "", "")
	fs.Int64("seed", 0, "")
	fs.Int("workers", 0, "")
	if err := fs.Parse([]string{"-seed", "99", "-candidates", "fleet.json"}); err != nil {
		t.Fatal(err)
	}
	c.ApplyFlags(fs)

	if c.Seed != 99 || c.Candidates != "fleet.json" {
		t.Errorf("flags did not override config: %+v", c)
	}
	if c.Workers != 3 || c.Scenarios != "b.csv" {
		t.Errorf("unset flags changed config: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	if err := (&Config{Workers: -1}).Validate(); err == nil {
		t.Errorf("expected error for empty config")
	}

	c.Trials = -3
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "-3: trial count must not be negative") {
		t.Errorf("expected negative trial count error, got %v", err)
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{\n  \"seed\": ,\n}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error with line number, got %v", err)
	}
}
