// Package orchestrator implements C7: it pairs named traces from a baseline
// and target input document, evaluates each intersected pair through the
// gate, and reduces the per-trace verdicts into one run report and exit
// status.
//
// Grounded on internal/referee/validation_engine.go's weighted-semaphore
// worker pool, replacing its unbounded per-job goroutine fan-out with a
// pool bounded to GOMAXPROCS (spec §5's "bounded worker pool" requirement)
// and its phase/job machinery with a single flat fan-out over trace names,
// since the gate has no phase-gating or fail-fast requirement across traces.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"gatekeeper/domain/core"
	domaingate "gatekeeper/domain/gate"
	"gatekeeper/domain/verdict"
	"gatekeeper/internal"
	"gatekeeper/internal/gate"
	"gatekeeper/ports"
)

// ExitCode mirrors spec §4.7/§6: 0 success, 1 at least one FAIL, 2 parse error.
type ExitCode int

const (
	ExitOK        ExitCode = 0
	ExitGateFail  ExitCode = 1
	ExitInputErr  ExitCode = 2
)

// Report is the aggregate result of one orchestrator run.
type Report struct {
	RunID       core.RunID
	Fingerprint core.RunFingerprint
	Results     []verdict.GateResult
	Missing     []string // trace names present on only one side
	ExitCode    ExitCode
}

// Run executes C7 over baseline and target JSON documents. maxWorkers <= 0
// defaults to runtime.GOMAXPROCS(0), bounding parallel gate evaluations with
// a weighted semaphore rather than one goroutine per trace.
func Run(ctx context.Context, baseline, target io.Reader, cfg domaingate.Config, rngPort ports.RNGPort, maxWorkers int, logger *internal.Logger) (*Report, error) {
	baselineSamples, err := parseDocument(baseline, "baseline")
	if err != nil {
		return &Report{ExitCode: ExitInputErr}, err
	}
	targetSamples, err := parseDocument(target, "target")
	if err != nil {
		return &Report{ExitCode: ExitInputErr}, err
	}

	names, missing := intersectNames(baselineSamples, targetSamples)

	runID := core.NewRunID()
	fingerprint := core.ComputeRunFingerprint(names, configSummary(cfg))

	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	sem := semaphore.NewWeighted(int64(maxWorkers))

	results := make([]verdict.GateResult, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		if err := sem.Acquire(ctx, 1); err != nil {
			return &Report{RunID: runID, Fingerprint: fingerprint, ExitCode: ExitInputErr}, err
		}
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer sem.Release(1)

			rng, rngErr := rngPort.SeededStream(ctx, name, cfg.Seed)
			if rngErr != nil {
				logger.Error("orchestrator: rng stream for trace %q: %v", name, rngErr)
				results[i] = verdict.New(name, verdict.StatusInconclusive, "INTERNAL_ERROR: rng unavailable", map[string]any{})
				return
			}
			results[i] = gate.Evaluate(name, baselineSamples[name], targetSamples[name], cfg, rng)
		}(i, name)
	}
	wg.Wait()

	exitCode := ExitOK
	for _, r := range results {
		if r.IsFailure() {
			exitCode = ExitGateFail
			break
		}
	}

	return &Report{
		RunID:       runID,
		Fingerprint: fingerprint,
		Results:     results,
		Missing:     missing,
		ExitCode:    exitCode,
	}, nil
}

// intersectNames returns the sorted intersection of trace names present in
// both sides, plus the sorted set of names present on only one side.
func intersectNames(baseline, target map[string]domaingate.Sample) (intersected, missing []string) {
	for name := range baseline {
		if _, ok := target[name]; ok {
			intersected = append(intersected, name)
		} else {
			missing = append(missing, name)
		}
	}
	for name := range target {
		if _, ok := baseline[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(intersected)
	sort.Strings(missing)
	return intersected, missing
}

func configSummary(cfg domaingate.Config) string {
	return fmt.Sprintf("%+v", cfg)
}
