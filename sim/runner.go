// sim/runner.go
// Copyright(c) 2022-2025 airrescue contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/mmp/airrescue/log"
	"github.com/mmp/airrescue/rand"

	"github.com/brunoga/deep"
	"github.com/goforj/godump"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// SimulationContext holds everything a run is evaluated over: the fleet of
// candidates and the scenarios. Independent runs should each have their
// own SimulationContext (see Clone), since running a batch updates the
// candidates' counters.
type SimulationContext struct {
	Candidates []*Candidate
	Scenarios  []ScenarioSpec
}

// NewSimulationContext loads and validates candidate and scenario records.
func NewSimulationContext(candidates []CandidateRecord, scenarios []ScenarioRecord) (*SimulationContext, error) {
	cands, err := LoadCandidates(candidates)
	if err != nil {
		return nil, err
	}
	specs, err := LoadScenarios(scenarios)
	if err != nil {
		return nil, err
	}
	return &SimulationContext{Candidates: cands, Scenarios: specs}, nil
}

// Clone returns a deep copy of the context that shares no state with the
// original.
func (sc *SimulationContext) Clone() *SimulationContext {
	return deep.MustCopy(sc)
}

// BatchState tracks where a Runner is in a batch of trials.
type BatchState int32

const (
	BatchIdle BatchState = iota
	// The scenario's sampler and the worker streams are being set up.
	BatchSampling
	// Workers are sampling conditions and scoring candidates.
	BatchScoring
	// Worker tallies are being merged into the aggregator.
	BatchRecording
	BatchReporting
	BatchReset
)

func (s BatchState) String() string {
	return [...]string{"Idle", "Sampling", "Scoring", "Recording", "Reporting", "Reset"}[s]
}

// BatchReport is the outcome of running one scenario for a number of
// trials.
type BatchReport struct {
	Scenario  ScenarioSpec
	Trials    int
	Seed      int64
	Workers   int
	Standings []Standing
	// NoWinnerTrials counts trials in which no candidate could finish.
	NoWinnerTrials int
	Elapsed        time.Duration
}

// Leader returns the standing with the most wins; ties go to the one
// listed first.
func (b BatchReport) Leader() (Standing, bool) {
	if len(b.Standings) == 0 {
		return Standing{}, false
	}
	best := b.Standings[0]
	for _, s := range b.Standings[1:] {
		if s.Wins > best.Wins {
			best = s
		}
	}
	return best, true
}

// Runner runs batches of trials over a SimulationContext. Trials are
// spread across Workers goroutines, each with its own random stream. The
// stream seeds are derived from Seed and the number of batches run so
// far, so a Runner with a given seed and worker count produces the same
// sequence of reports every time.
type Runner struct {
	Context *SimulationContext
	Workers int
	Seed    int64

	agg     *Aggregator
	batches int
	state   atomic.Int32
	lg      *log.Logger

	// Validated samplers for recently run scenarios, keyed by the
	// scenario's bounds and tendency so that edits to Context.Scenarios
	// are sampled (and validated) afresh.
	samplers *lru.Cache[string, *Sampler]
}

func NewRunner(sc *SimulationContext, workers int, seed int64, lg *log.Logger) (*Runner, error) {
	if len(sc.Candidates) == 0 {
		return nil, ErrEmptyFleet
	}
	if len(sc.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	samplers, err := lru.New[string, *Sampler](32)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Context:  sc,
		Workers:  max(1, workers),
		Seed:     seed,
		agg:      NewAggregator(sc.Candidates),
		lg:       lg,
		samplers: samplers,
	}, nil
}

func (r *Runner) State() BatchState {
	return BatchState(r.state.Load())
}

func (r *Runner) setState(s BatchState) {
	r.state.Store(int32(s))
	r.lg.Debug("batch state", slog.String("state", s.String()))
}

// Run runs trials trials of every scenario in order, passing each
// scenario's report to emit before moving on to the next one. It stops at
// the first error returned by emit.
func (r *Runner) Run(ctx context.Context, trials int, emit func(BatchReport) error) error {
	if trials <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTrialCount, trials)
	}

	for i := range r.Context.Scenarios {
		rep, err := r.RunBatch(ctx, i, trials)
		if err != nil {
			return err
		}
		if err := emit(rep); err != nil {
			return err
		}
	}
	return nil
}

// RunBatch runs the given number of trials of a single scenario and
// returns the resulting standings. Win counts are zeroed before the batch
// starts and again once the report has been made.
func (r *Runner) RunBatch(ctx context.Context, scenario int, trials int) (BatchReport, error) {
	if trials <= 0 {
		return BatchReport{}, fmt.Errorf("%w: %d", ErrInvalidTrialCount, trials)
	}
	if scenario < 0 || scenario >= len(r.Context.Scenarios) {
		return BatchReport{}, fmt.Errorf("%d: %w", scenario, ErrUnknownScenarioIndex)
	}

	r.setState(BatchSampling)
	defer r.setState(BatchIdle)

	spec := r.Context.Scenarios[scenario]
	key := spec.String()
	sampler, ok := r.samplers.Get(key)
	if !ok {
		var err error
		if sampler, err = NewSampler(spec); err != nil {
			return BatchReport{}, fmt.Errorf("%s: %w", spec.Name, err)
		}
		r.samplers.Add(key, sampler)
	}

	start := time.Now()
	seed := rand.SplitSeed(r.Seed, r.batches)
	r.batches++
	workers := min(r.Workers, trials)

	lg := r.lg.With(slog.String("scenario", spec.Name))
	lg.Info("Starting batch", slog.Int("trials", trials), slog.Int("workers", workers),
		slog.Int64("seed", seed))

	r.agg.ResetAll()
	r.setState(BatchScoring)

	tallies := make([]Tally, workers)
	eg, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := trials / workers
		if w < trials%workers {
			n++
		}
		tallies[w] = r.agg.NewTally()

		eg.Go(func() error {
			return r.runTrials(ctx, sampler, rand.MakeSeeded(rand.SplitSeed(seed, w)), n, &tallies[w], lg)
		})
	}
	if err := eg.Wait(); err != nil {
		r.agg.ResetAll()
		return BatchReport{}, err
	}

	r.setState(BatchRecording)
	for _, t := range tallies {
		if err := r.agg.Merge(t); err != nil {
			r.agg.ResetAll()
			return BatchReport{}, err
		}
	}

	r.setState(BatchReporting)
	standings, err := r.agg.Report(trials)
	if err != nil {
		r.agg.ResetAll()
		return BatchReport{}, err
	}
	rep := BatchReport{
		Scenario:       deep.MustCopy(spec),
		Trials:         trials,
		Seed:           seed,
		Workers:        workers,
		Standings:      standings,
		NoWinnerTrials: r.agg.NoWinner,
		Elapsed:        time.Since(start),
	}

	r.setState(BatchReset)
	r.agg.ResetAll()

	if leader, ok := rep.Leader(); ok {
		lg.Info("Finished batch", slog.String("leader", leader.Name),
			slog.Float64("leader_pct", leader.WinPercentage),
			slog.Int("no_winner", rep.NoWinnerTrials),
			slog.Duration("elapsed", rep.Elapsed))
	}
	return rep, nil
}

// runTrials runs n trials with the given random stream, recording the
// outcomes into t.
func (r *Runner) runTrials(ctx context.Context, sampler *Sampler, rng *rand.Rand, n int, t *Tally,
	lg *log.Logger) error {
	cands := r.Context.Candidates
	times := make([]float64, len(cands))
	debug := lg.DebugEnabled()

	for i := range n {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		cond := sampler.Sample(rng)
		if debug && i == 0 {
			lg.Debug("First sampled condition", slog.String("condition", godump.DumpStr(cond)))
		}

		for j, c := range cands {
			tm, speed, ok := missionTime(c, cond)
			if !ok {
				tm = math.Inf(1)
				t.DNFs[j]++
				if debug {
					lg.Debug("Candidate could not finish", slog.String("candidate", c.Name),
						slog.Float64("effective_speed", speed), slog.String("condition", cond.String()))
				}
			}
			times[j] = tm
		}

		if w, ok := winnerIndex(cands, times); ok {
			t.Wins[w]++
		} else {
			t.NoWinner++
		}
	}
	return nil
}
