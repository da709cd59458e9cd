package gate

import (
	"math/rand"

	"gatekeeper/internal/gate/detectors"

	domaingate "gatekeeper/domain/gate"
)

// cascadeResult carries every detector's outcome plus the merged details
// map, in the fixed order spec §5 requires be "observable via details":
// median, tail, directionality, Mann-Whitney, bootstrap CI.
type cascadeResult struct {
	Median         domaingate.DetectorOutcome
	Tail           domaingate.DetectorOutcome
	Directionality domaingate.DetectorOutcome
	MannWhitney    domaingate.DetectorOutcome
	MannWhitneyRan bool
	Bootstrap      domaingate.DetectorOutcome
	Details        map[string]any
}

// runCascade runs the C5 detectors in their fixed order and merges details.
func runCascade(baseline, target domaingate.Sample, thresholds domaingate.ThresholdSet, cfg domaingate.Config, tailK int, rng *rand.Rand) (cascadeResult, error) {
	details := map[string]any{}

	medianOutcome, medianDetails, err := detectors.Median(baseline, target, thresholds)
	if err != nil {
		return cascadeResult{}, err
	}
	mergeInto(details, medianDetails)

	tailOutcome, tailDetails, err := detectors.Tail(baseline, target, thresholds, cfg, TailStat, tailK)
	if err != nil {
		return cascadeResult{}, err
	}
	mergeInto(details, tailDetails)

	dirOutcome, dirDetails, err := detectors.Directionality(baseline, target)
	if err != nil {
		return cascadeResult{}, err
	}
	mergeInto(details, dirDetails)

	result := cascadeResult{
		Median:         medianOutcome,
		Tail:           tailOutcome,
		Directionality: dirOutcome,
	}

	if cfg.UseMannWhitney {
		mwOutcome, mwDetails, err := detectors.MannWhitney(baseline, target, cfg)
		if err != nil {
			return cascadeResult{}, err
		}
		mergeInto(details, mwDetails)
		result.MannWhitney = mwOutcome
		result.MannWhitneyRan = true
	}

	bootOutcome, bootDetails, err := detectors.Bootstrap(baseline, target, cfg, rng)
	if err != nil {
		return cascadeResult{}, err
	}
	mergeInto(details, bootDetails)
	result.Bootstrap = bootOutcome

	details["practical_threshold_ms"] = thresholds.PracticalThresholdMs
	details["tail_practical_threshold_ms"] = thresholds.TailPracticalThreshMs
	details["tail_k"] = tailK

	result.Details = details
	return result, nil
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		dst[k] = v
	}
}
