package gate

import (
	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// ComputeThresholds implements C3: the threshold engine. A fixed floor
// protects fast operations where small relative noise swamps percentage
// thresholds; a relative floor prevents overly strict gating on slow
// operations. The max-of-two rule applies whichever floor yields the larger
// threshold. No CV
// multiplier is applied (spec §9 open question (b)) — variance is handled
// upstream by the quality gate.
func ComputeThresholds(baseline domaingate.Sample, cfg domaingate.Config) (domaingate.ThresholdSet, error) {
	baselineMedian, err := primitives.Median(baseline)
	if err != nil {
		return domaingate.ThresholdSet{}, err
	}
	baselineTail, err := TailStat(baseline, cfg)
	if err != nil {
		return domaingate.ThresholdSet{}, err
	}

	medianThreshold := maxOf(cfg.MSFloor, cfg.PctFloor*baselineMedian)
	tailThreshold := maxOf(cfg.TailMSFloor, cfg.TailPctFloor*baselineTail)
	practicalThreshold := clamp(baselineMedian*cfg.PracticalPct, cfg.PracticalMinMs, cfg.PracticalMaxMs)
	// The tail side of the practical override uses the same clamp algebra
	// as the median side, over the tail statistic rather than the median.
	tailPracticalThreshold := clamp(baselineTail*cfg.PracticalPct, cfg.PracticalMinMs, cfg.PracticalMaxMs)

	return domaingate.ThresholdSet{
		MedianThresholdMs:     medianThreshold,
		TailThresholdMs:       tailThreshold,
		PracticalThresholdMs:  practicalThreshold,
		TailPracticalThreshMs: tailPracticalThreshold,
	}, nil
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
