// cmd/airrescue/main.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// airrescue runs a Monte Carlo tournament between candidate rescue
// aircraft: for each scenario in the scenario table, it samples many
// random mission conditions and reports how often each candidate would
// have completed the mission first.

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mmp/airrescue/log"
	"github.com/mmp/airrescue/report"
	"github.com/mmp/airrescue/sim"
	"github.com/mmp/airrescue/tables"
	"github.com/mmp/airrescue/util"

	"github.com/apenwarr/fixconsole"
)

var (
	candidatesFile = flag.String("candidates", "", "candidate table (CSV or JSON, optionally .zst compressed)")
	scenariosFile  = flag.String("scenarios", "", "scenario table (CSV or JSON, optionally .zst compressed)")
	configFile     = flag.String("config", "", "JSON file with run settings; flags override its values")
	seed           = flag.Int64("seed", 0, "random seed; 0 picks one from the current time")
	workers        = flag.Int("workers", 0, "number of worker goroutines; 0 uses one per CPU")
	trials         = flag.Int("trials", 0, "run this many trials per scenario and exit instead of prompting")
	format         = flag.String("format", "text", "report format: text, json")
	archiveFile    = flag.String("archive", "", "save all reports to this file when done")
	showArchive    = flag.String("show", "", "print the reports in the given archive and exit")
	logLevel       = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir         = flag.String("logdir", "", "log file directory")
	cpuprofile     = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile     = flag.String("memprofile", "", "write memory profile to this file")
)

func main() {
	flag.Parse()

	if err := fixconsole.FixConsoleIfNeeded(); err != nil {
		fmt.Printf("FixConsole: %v\n", err)
	}

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)
	defer lg.CatchAndReportCrash()

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, lg); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Interrupted")
		} else {
			fmt.Fprintln(os.Stderr, err)
			lg.Logger.Error("Run failed", slog.Any("error", err))
		}
		profiler.Cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, lg *log.Logger) error {
	write, err := report.Writer(*format)
	if err != nil {
		return err
	}

	if *showArchive != "" {
		reports, err := report.LoadArchive(*showArchive)
		if err != nil {
			return err
		}
		for _, rep := range reports {
			if err := write(out, rep); err != nil {
				return err
			}
		}
		return nil
	}

	config, err := LoadConfig(*configFile)
	if err != nil {
		return err
	}
	config.ApplyFlags(flag.CommandLine)
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Format != "" {
		if write, err = report.Writer(config.Format); err != nil {
			return err
		}
	}

	// Configuration and parse errors are all reported before anything
	// runs.
	sc, err := tables.LoadContext(config.Candidates, config.Scenarios)
	if err != nil {
		return err
	}
	lg.Info("Loaded tables",
		slog.Any("candidates", util.MapSlice(sc.Candidates, func(c *sim.Candidate) string { return c.Name })),
		slog.Int("scenarios", len(sc.Scenarios)))

	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	if config.Workers == 0 {
		config.Workers = util.DefaultWorkers()
	}
	fmt.Fprintf(out, "Using seed %d with %d workers\n", config.Seed, config.Workers)
	lg.Infof("Seed %d, %d workers", config.Seed, config.Workers)

	runner, err := sim.NewRunner(sc, config.Workers, config.Seed, lg)
	if err != nil {
		return err
	}

	s := &session{
		runner:  runner,
		write:   write,
		out:     out,
		archive: config.Archive,
		lg:      lg,
	}
	if config.Trials != 0 {
		return s.runTrials(ctx, config.Trials)
	}
	return s.interactive(ctx, in)
}

// session runs batches for the user and accumulates the reports for the
// archive.
type session struct {
	runner  *sim.Runner
	write   func(io.Writer, sim.BatchReport) error
	out     io.Writer
	archive string
	reports []sim.BatchReport
	lg      *log.Logger
}

func (s *session) runTrials(ctx context.Context, n int) error {
	err := s.runner.Run(ctx, n, func(rep sim.BatchReport) error {
		s.reports = append(s.reports, rep)
		return s.write(s.out, rep)
	})
	if err != nil {
		return err
	}

	if s.archive != "" {
		if err := report.SaveArchive(s.archive, s.reports); err != nil {
			return err
		}
		s.lg.Info("Saved archive", slog.String("path", s.archive), slog.Int("reports", len(s.reports)))
	}
	return nil
}

// interactive repeatedly asks for a trial count and runs every scenario
// for that many trials. It returns when the user enters a count of zero
// or less or the input ends.
func (s *session) interactive(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		n, ok := promptTrials(sc, s.out)
		if !ok {
			return nil
		}
		if n <= 0 {
			fmt.Fprintln(s.out, "You cannot have 0 or negative iterations!!!")
			return nil
		}
		if err := s.runTrials(ctx, n); err != nil {
			return err
		}
	}
}

// promptTrials asks for a trial count until it gets an integer. false is
// returned at the end of the input.
func promptTrials(sc *bufio.Scanner, out io.Writer) (int, bool) {
	for {
		fmt.Fprint(out, "\nPlease enter the number of simulations to be run: ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return 0, false
		}
		line := strings.TrimSpace(sc.Text())
		if n, err := strconv.Atoi(line); err == nil {
			return n, true
		}
		fmt.Fprintf(out, "%q is not a whole number\n", line)
	}
}
