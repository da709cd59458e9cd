package gate

import (
	"testing"

	domaingate "gatekeeper/domain/gate"
)

func TestComputeThresholds_FloorsDominateAtLowMedian(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	baseline := domaingate.Sample{10, 10, 10, 10, 10, 10, 10, 10, 10, 10}

	thresholds, err := ComputeThresholds(baseline, cfg)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}
	// median=10; pct_floor*median = 0.3, ms_floor = 5 -> median threshold = 5.
	if thresholds.MedianThresholdMs != cfg.MSFloor {
		t.Errorf("MedianThresholdMs = %v, want floor %v", thresholds.MedianThresholdMs, cfg.MSFloor)
	}
	if thresholds.PracticalThresholdMs != cfg.PracticalMinMs {
		t.Errorf("PracticalThresholdMs = %v, want clamp floor %v", thresholds.PracticalThresholdMs, cfg.PracticalMinMs)
	}
}

func TestComputeThresholds_RelativeDominatesAtHighMedian(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	baseline := make(domaingate.Sample, 10)
	for i := range baseline {
		baseline[i] = 1000
	}

	thresholds, err := ComputeThresholds(baseline, cfg)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}
	// median=1000; pct_floor*median = 30 > ms_floor=5.
	want := cfg.PctFloor * 1000
	if !almostEqualLocal(thresholds.MedianThresholdMs, want) {
		t.Errorf("MedianThresholdMs = %v, want %v", thresholds.MedianThresholdMs, want)
	}
	// practical = clamp(1000*0.01, 2, 20) = 10.
	if !almostEqualLocal(thresholds.PracticalThresholdMs, 10) {
		t.Errorf("PracticalThresholdMs = %v, want 10", thresholds.PracticalThresholdMs)
	}
}

func TestComputeThresholds_EmptyBaselineErrors(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	if _, err := ComputeThresholds(domaingate.Sample{}, cfg); err == nil {
		t.Fatal("expected error for empty baseline")
	}
}

func almostEqualLocal(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-6
}
