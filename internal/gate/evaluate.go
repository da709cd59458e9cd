package gate

import (
	"math/rand"

	domaingate "gatekeeper/domain/gate"
	"gatekeeper/domain/verdict"
	"gatekeeper/internal/errors"
)

// Evaluate runs the full per-trace pipeline: C2 data-quality gate, then
// (if admitted) C3/C4/C1/C5 and C6. rng is the caller-seeded, per-trace
// PRNG stream (see internal/rng and ports.RNGPort.SeededStream) — this function
// never touches a global random source.
func Evaluate(name string, baseline, target domaingate.Sample, cfg domaingate.Config, rng *rand.Rand) verdict.GateResult {
	baselineQuality, err := AssessQuality(baseline, cfg)
	if err != nil {
		return inconclusiveResult(name, "INTERNAL_ERROR: "+err.Error())
	}
	targetQuality, err := AssessQuality(target, cfg)
	if err != nil {
		return inconclusiveResult(name, "INTERNAL_ERROR: "+err.Error())
	}

	details := map[string]any{
		"n_baseline":       len(baseline),
		"n_target":         len(target),
		"quality_baseline": baselineQuality,
		"quality_target":   targetQuality,
		"mode":             string(cfg.Mode),
	}

	// I1: if either sample fails the quality gate, INCONCLUSIVE and
	// detectors downstream are not consulted.
	if !baselineQuality.Admitted() || !targetQuality.Admitted() {
		reason := inconclusiveReason(baselineQuality, targetQuality)
		return verdict.New(name, verdict.StatusInconclusive, reason, details)
	}

	thresholds, err := ComputeThresholds(baseline, cfg)
	if err != nil {
		return inconclusiveResult(name, "INTERNAL_ERROR: "+err.Error())
	}
	tailK := TailK(len(baseline), cfg)

	cascadeRes, err := runCascade(baseline, target, thresholds, cfg, tailK, rng)
	if err != nil {
		return inconclusiveResult(name, "INTERNAL_ERROR: "+err.Error())
	}
	mergeInto(details, cascadeRes.Details)

	var status verdict.Status
	var reason string
	overrides := []string{}
	switch cfg.Mode {
	case domaingate.ModeRelease:
		lo, _ := details["bootstrap_ci_low_ms"].(float64)
		hi, _ := details["bootstrap_ci_high_ms"].(float64)
		status, reason = ReduceEquivalence(lo, hi, cfg.EquivalenceMarginMs)
		details["equivalence_margin_ms"] = cfg.EquivalenceMarginMs
	default:
		status, reason, overrides = ReduceCascade(cascadeRes)
	}
	details["overrides"] = overrides

	return verdict.New(name, status, reason, details)
}

func inconclusiveResult(name, reason string) verdict.GateResult {
	return verdict.New(name, verdict.StatusInconclusive, reason, map[string]any{})
}

func inconclusiveReason(b, t domaingate.QualityReport) string {
	if b.HasIssue(domaingate.IssueTooFewSamples) || t.HasIssue(domaingate.IssueTooFewSamples) {
		return string(errors.CodeInsufficientData) + ": TOO_FEW_SAMPLES"
	}
	if b.HasIssue(domaingate.IssueHighCV) || t.HasIssue(domaingate.IssueHighCV) {
		return string(errors.CodeUnreliableData) + ": HIGH_CV"
	}
	return "INCONCLUSIVE"
}
