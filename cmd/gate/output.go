package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/internal/orchestrator"
)

// writeResults writes one JSON file per trace GateResult to dir, named
// "<trace-name>.json", plus "_missing.json" when any traces were skipped.
func writeResults(dir string, report *orchestrator.Report) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, res := range report.Results {
		path := filepath.Join(dir, res.Name+".json")
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result for %q: %w", res.Name, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing result for %q: %w", res.Name, err)
		}
	}

	if len(report.Missing) > 0 {
		data, _ := json.MarshalIndent(report.Missing, "", "  ")
		_ = os.WriteFile(filepath.Join(dir, "_missing.json"), data, 0o644)
	}

	return nil
}

// printSummary prints a human-readable console summary, one line per trace.
// The two-sided p-value line is a reporting convenience only (SPEC_FULL.md
// §12); it never participates in the one-sided Mann-Whitney decision.
func printSummary(report *orchestrator.Report, cfg domaingate.Config) {
	fmt.Printf("run %s (%d traces, %d missing)\n", report.RunID.String(), len(report.Results), len(report.Missing))
	for _, res := range report.Results {
		fmt.Printf("  %-30s %-12s %s\n", res.Name, res.Status, res.Reason)
		if p, ok := res.Details["mann_whitney_p"].(float64); ok {
			twoSided := p * 2
			if twoSided > 1 {
				twoSided = 1
			}
			fmt.Printf("    mann_whitney_p=%.5f (two-sided=%.5f)\n", p, twoSided)
		}
	}
	fmt.Printf("exit code: %d\n", report.ExitCode)
}
