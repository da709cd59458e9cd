package detectors

import (
	"fmt"

	domaingate "gatekeeper/domain/gate"
)

// TailStatFunc lets the tail detector reuse the C4 tail-statistic
// implementation without an import cycle (internal/gate imports
// internal/gate/detectors, not the reverse).
type TailStatFunc func(sample domaingate.Sample, cfg domaingate.Config) (float64, error)

// Tail implements the tail detector: tail_delta = tail_stat(t) -
// tail_stat(b); fails when tail_delta > tail_threshold_ms.
func Tail(baseline, target domaingate.Sample, thresholds domaingate.ThresholdSet, cfg domaingate.Config, tailStat TailStatFunc, tailK int) (domaingate.DetectorOutcome, map[string]any, error) {
	baseTail, err := tailStat(baseline, cfg)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}
	targetTail, err := tailStat(target, cfg)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}
	delta := targetTail - baseTail

	outcome := domaingate.Pass(domaingate.DetectorTail, delta)
	if delta > thresholds.TailThresholdMs {
		outcome = domaingate.Fail(domaingate.DetectorTail,
			fmt.Sprintf("tail delta %.3fms exceeds threshold %.3fms", delta, thresholds.TailThresholdMs), delta)
	}

	details := map[string]any{
		"baseline_tail_ms": baseTail,
		"target_tail_ms":   targetTail,
		"tail_delta_ms":    delta,
		"tail_threshold_ms": thresholds.TailThresholdMs,
		"tail_k":            tailK,
	}
	return outcome, details, nil
}
