package orchestrator

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/domain/verdict"
	"gatekeeper/internal"
)

type fakeRNG struct{}

func (fakeRNG) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(seed)), nil
}

func (fakeRNG) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	return nil
}

func testLogger() *internal.Logger {
	return internal.NewDefaultLogger()
}

func flatDoc(traces map[string][]float64) string {
	type traceJSON struct {
		Name   string    `json:"name"`
		Values []float64 `json:"values"`
	}
	doc := struct {
		Traces []traceJSON `json:"traces"`
	}{}
	for name, values := range traces {
		doc.Traces = append(doc.Traces, traceJSON{Name: name, Values: values})
	}
	b, _ := json.Marshal(doc)
	return string(b)
}

func repeatSample(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestRun_MissingTraceIsSkippedNotFailed(t *testing.T) {
	baseline := strings.NewReader(flatDoc(map[string][]float64{
		"checkout": repeatSample(10, 100),
		"search":   repeatSample(10, 50),
	}))
	target := strings.NewReader(flatDoc(map[string][]float64{
		"checkout": repeatSample(10, 100),
	}))

	report, err := orchestratorRun(t, baseline, target)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("Results = %v, want exactly the intersected trace", report.Results)
	}
	if len(report.Missing) != 1 || report.Missing[0] != "search" {
		t.Errorf("Missing = %v, want [search]", report.Missing)
	}
	if report.ExitCode != ExitOK {
		t.Errorf("ExitCode = %v, want ExitOK", report.ExitCode)
	}
}

func TestRun_DuplicateNameIsSchemaError(t *testing.T) {
	baseline := strings.NewReader(`{"traces":[{"name":"checkout","values":[1,2,3]},{"name":"checkout","values":[4,5,6]}]}`)
	target := strings.NewReader(`{"traces":[{"name":"checkout","values":[1,2,3]}]}`)

	report, err := orchestratorRun(t, baseline, target)
	if err == nil {
		t.Fatal("expected a schema error for a duplicate trace name")
	}
	if report.ExitCode != ExitInputErr {
		t.Errorf("ExitCode = %v, want ExitInputErr", report.ExitCode)
	}
}

func TestRun_EmptyNameIsSchemaError(t *testing.T) {
	baseline := strings.NewReader(`{"traces":[{"name":"","values":[1,2,3]}]}`)
	target := strings.NewReader(`{"traces":[{"name":"checkout","values":[1,2,3]}]}`)

	if _, err := orchestratorRun(t, baseline, target); err == nil {
		t.Fatal("expected a schema error for an empty trace name")
	}
}

func TestRun_ExitCodeReflectsWorstResult(t *testing.T) {
	// "regresses" clearly fails on median, "improves" clearly passes;
	// the run-level exit code must reflect the worst of the two.
	baselineJSON := `{"traces":[{"name":"regresses","values":[100,102,98,101,99,103,97,100,102,101]},{"name":"improves","values":[200,202,198,201,199,203,197,200,202,201]}]}`
	targetJSON := `{"traces":[{"name":"regresses","values":[130,132,128,131,129,133,127,130,132,131]},{"name":"improves","values":[150,152,148,151,149,153,147,150,152,151]}]}`

	report, err := orchestratorRun(t, strings.NewReader(baselineJSON), strings.NewReader(targetJSON))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.ExitCode != ExitGateFail {
		t.Errorf("ExitCode = %v, want ExitGateFail (regresses should FAIL)", report.ExitCode)
	}

	var sawFail, sawNonFail bool
	for _, r := range report.Results {
		if r.Status == verdict.StatusFail {
			sawFail = true
		} else {
			sawNonFail = true
		}
	}
	if !sawFail || !sawNonFail {
		t.Errorf("expected a mix of FAIL and non-FAIL results, got %+v", report.Results)
	}
}

func TestRun_ResultsOrderedByTraceName(t *testing.T) {
	baselineJSON := `{"traces":[{"name":"zeta","values":[1,2,3,4,5,6,7,8,9,10]},{"name":"alpha","values":[1,2,3,4,5,6,7,8,9,10]}]}`
	targetJSON := `{"traces":[{"name":"zeta","values":[1,2,3,4,5,6,7,8,9,10]},{"name":"alpha","values":[1,2,3,4,5,6,7,8,9,10]}]}`

	report, err := orchestratorRun(t, strings.NewReader(baselineJSON), strings.NewReader(targetJSON))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Results) != 2 || report.Results[0].Name != "alpha" || report.Results[1].Name != "zeta" {
		t.Errorf("Results = %+v, want stable name-sorted order [alpha, zeta]", report.Results)
	}
}

func orchestratorRun(t *testing.T, baseline, target *strings.Reader) (*Report, error) {
	t.Helper()
	cfg := domaingate.DefaultConfig()
	return Run(context.Background(), baseline, target, cfg, fakeRNG{}, 2, testLogger())
}
