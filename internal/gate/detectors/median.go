// Package detectors implements the individual detectors of the C5 cascade.
// Each detector is a small, pure function over the baseline and target
// samples; internal/gate/cascade.go is responsible for
// running them in the fixed, spec-mandated order and assembling details.
package detectors

import (
	"fmt"

	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// Median implements the median detector: median_delta = median(t) -
// median(b); fails when median_delta > median_threshold_ms.
func Median(baseline, target domaingate.Sample, thresholds domaingate.ThresholdSet) (domaingate.DetectorOutcome, map[string]any, error) {
	baseMedian, err := primitives.Median(baseline)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}
	targetMedian, err := primitives.Median(target)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}
	delta := targetMedian - baseMedian

	outcome := domaingate.Pass(domaingate.DetectorMedian, delta)
	if delta > thresholds.MedianThresholdMs {
		outcome = domaingate.Fail(domaingate.DetectorMedian,
			fmt.Sprintf("median delta %.3fms exceeds threshold %.3fms", delta, thresholds.MedianThresholdMs), delta)
	}

	details := map[string]any{
		"baseline_median_ms": baseMedian,
		"target_median_ms":   targetMedian,
		"median_delta_ms":    delta,
		"median_threshold_ms": thresholds.MedianThresholdMs,
	}
	return outcome, details, nil
}
