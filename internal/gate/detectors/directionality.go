package detectors

import (
	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// Directionality computes dir_frac = |{x in t : x > median(b)}| / |t|.
// Informational only (spec §9 open question (a)): it is recorded in
// details but the returned DetectorOutcome's Failed field is always false —
// the reducer must never consult it for a FAIL decision.
func Directionality(baseline, target domaingate.Sample) (domaingate.DetectorOutcome, map[string]any, error) {
	baseMedian, err := primitives.Median(baseline)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}

	above := 0
	for _, v := range target {
		if v > baseMedian {
			above++
		}
	}
	dirFrac := float64(above) / float64(len(target))

	outcome := domaingate.Pass(domaingate.DetectorDirectionality, dirFrac)
	details := map[string]any{
		"directionality_frac": dirFrac,
	}
	return outcome, details, nil
}
