package gate

import (
	"testing"

	domaingate "gatekeeper/domain/gate"
)

func TestAssessQuality_TooFewSamples(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	sample := domaingate.Sample{100, 101, 102}

	report, err := AssessQuality(sample, cfg)
	if err != nil {
		t.Fatalf("AssessQuality: %v", err)
	}
	if !report.HasIssue(domaingate.IssueTooFewSamples) {
		t.Errorf("expected TOO_FEW_SAMPLES issue for n=%d < MinN=%d", len(sample), cfg.MinN)
	}
	if report.Admitted() {
		t.Error("sample with too few points should not be admitted")
	}
}

func TestAssessQuality_HighCV(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	sample := domaingate.Sample{10, 200, 5, 300, 8, 250, 12, 280, 6, 260}

	report, err := AssessQuality(sample, cfg)
	if err != nil {
		t.Fatalf("AssessQuality: %v", err)
	}
	if !report.HasIssue(domaingate.IssueHighCV) {
		t.Errorf("expected HIGH_CV issue, cv=%.2f max=%.2f", report.CVPct, cfg.CVMaxPct)
	}
	if report.Admitted() {
		t.Error("high-CV sample should not be admitted")
	}
}

func TestAssessQuality_CleanSampleAdmitted(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	sample := domaingate.Sample{100, 101, 99, 100, 102, 98, 101, 100, 99, 100, 101, 100}

	report, err := AssessQuality(sample, cfg)
	if err != nil {
		t.Fatalf("AssessQuality: %v", err)
	}
	if !report.Admitted() {
		t.Errorf("clean sample should be admitted, issues=%v", report.Issues)
	}
	if report.QualityScore != 100 {
		t.Errorf("QualityScore = %v, want 100 for a clean sample", report.QualityScore)
	}
	if report.QualityTier != "excellent" {
		t.Errorf("QualityTier = %q, want excellent", report.QualityTier)
	}
}

func TestAssessQuality_EmptySampleErrors(t *testing.T) {
	cfg := domaingate.DefaultConfig()
	if _, err := AssessQuality(domaingate.Sample{}, cfg); err == nil {
		t.Fatal("expected error for empty sample")
	}
}
