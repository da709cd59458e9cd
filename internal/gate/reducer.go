package gate

import (
	"math"

	"gatekeeper/domain/verdict"
	"gatekeeper/internal/gate/detectors"
)

// ReduceCascade implements C6 for PR mode: the combination rule and the
// practical-significance override.
//
// Grounded on internal/referee/referee.go's EvaluateTriGate/RunTriGate
// functions, which already combine N gate results under a precedence and
// override rule into a single verdict — the same shape as this reducer,
// retargeted from causal-inference gates to the median/tail/Mann-Whitney
// detectors of this pipeline.
func ReduceCascade(result cascadeResult) (verdict.Status, string, []string) {
	anyFail := result.Median.Failed || result.Tail.Failed || (result.MannWhitneyRan && result.MannWhitney.Failed)

	medianDelta := result.Median.Magnitude
	tailDelta := result.Tail.Magnitude
	practicalThreshold := result.Details["practical_threshold_ms"].(float64)
	tailPracticalThreshold := result.Details["tail_practical_threshold_ms"].(float64)

	if anyFail {
		if medianDelta <= practicalThreshold && tailDelta <= tailPracticalThreshold {
			return verdict.StatusPass, "PRACTICAL_OVERRIDE: regression detected but within practical significance threshold", []string{"PRACTICAL_OVERRIDE"}
		}
		return verdict.StatusFail, failureReason(result), nil
	}

	if math.Abs(medianDelta) < practicalThreshold && math.Abs(tailDelta) < tailPracticalThreshold {
		return verdict.StatusNoChange, "NO_CHANGE: deltas within practical significance threshold", nil
	}
	return verdict.StatusPass, "PASS: no detector fired", nil
}

// failureReason names the first detector whose bound was exceeded, in the
// fixed cascade order (median, tail, mann-whitney), preceded by "mw" if
// only Mann-Whitney fired.
func failureReason(result cascadeResult) string {
	if result.Median.Failed {
		return "median: " + result.Median.Reason
	}
	if result.Tail.Failed {
		return "tail: " + result.Tail.Reason
	}
	return "mw: " + result.MannWhitney.Reason
}

// ReduceEquivalence implements C6 for release mode: the two-one-sided-tests
// (TOST) check on the bootstrap CI of median(t) - median(b).
func ReduceEquivalence(lo, hi, margin float64) (verdict.Status, string) {
	if detectors.Equivalence(lo, hi, margin) {
		return verdict.StatusPass, "TOST_EQUIVALENT: bootstrap CI within equivalence margin"
	}
	return verdict.StatusFail, "TOST_NOT_EQUIVALENT: bootstrap CI outside equivalence margin"
}
