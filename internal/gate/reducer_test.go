package gate

import (
	"testing"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/domain/verdict"
)

func TestReduceCascade_FailWithoutOverride(t *testing.T) {
	result := cascadeResult{
		Median: domaingate.Fail(domaingate.DetectorMedian, "median delta 20 > threshold 5", 20),
		Tail:   domaingate.Pass(domaingate.DetectorTail, 1),
		Details: map[string]any{
			"practical_threshold_ms":      2.0,
			"tail_practical_threshold_ms": 2.0,
		},
	}

	status, reason, overrides := ReduceCascade(result)
	if status != verdict.StatusFail {
		t.Errorf("status = %v, want FAIL", status)
	}
	if len(overrides) != 0 {
		t.Errorf("overrides = %v, want empty", overrides)
	}
	if reason == "" {
		t.Error("expected a non-empty reason")
	}
}

func TestReduceCascade_PracticalOverride(t *testing.T) {
	result := cascadeResult{
		Median: domaingate.Fail(domaingate.DetectorMedian, "median delta 1.5 > threshold 1", 1.5),
		Tail:   domaingate.Pass(domaingate.DetectorTail, 1),
		Details: map[string]any{
			"practical_threshold_ms":      2.0,
			"tail_practical_threshold_ms": 2.0,
		},
	}

	status, reason, overrides := ReduceCascade(result)
	if status != verdict.StatusPass {
		t.Errorf("status = %v, want PASS via override", status)
	}
	if len(overrides) != 1 || overrides[0] != "PRACTICAL_OVERRIDE" {
		t.Errorf("overrides = %v, want [PRACTICAL_OVERRIDE]", overrides)
	}
	if reason == "" {
		t.Error("expected a non-empty reason")
	}
}

func TestReduceCascade_NoChange(t *testing.T) {
	result := cascadeResult{
		Median: domaingate.Pass(domaingate.DetectorMedian, 0.5),
		Tail:   domaingate.Pass(domaingate.DetectorTail, 0.5),
		Details: map[string]any{
			"practical_threshold_ms":      2.0,
			"tail_practical_threshold_ms": 2.0,
		},
	}

	status, _, overrides := ReduceCascade(result)
	if status != verdict.StatusNoChange {
		t.Errorf("status = %v, want NO_CHANGE", status)
	}
	if len(overrides) != 0 {
		t.Errorf("overrides = %v, want empty", overrides)
	}
}

func TestReduceCascade_PassNoChangeNotTriggered(t *testing.T) {
	result := cascadeResult{
		Median: domaingate.Pass(domaingate.DetectorMedian, 3),
		Tail:   domaingate.Pass(domaingate.DetectorTail, 0),
		Details: map[string]any{
			"practical_threshold_ms":      2.0,
			"tail_practical_threshold_ms": 2.0,
		},
	}

	status, _, _ := ReduceCascade(result)
	if status != verdict.StatusPass {
		t.Errorf("status = %v, want PASS", status)
	}
}

func TestReduceEquivalence(t *testing.T) {
	cases := []struct {
		lo, hi, margin float64
		want           verdict.Status
	}{
		{-5, 5, 30, verdict.StatusPass},
		{-30, 5, 30, verdict.StatusFail},  // touches the boundary, not strictly inside
		{-40, -35, 30, verdict.StatusFail},
	}
	for _, c := range cases {
		status, _ := ReduceEquivalence(c.lo, c.hi, c.margin)
		if status != c.want {
			t.Errorf("ReduceEquivalence(%v,%v,%v) = %v, want %v", c.lo, c.hi, c.margin, status, c.want)
		}
	}
}
