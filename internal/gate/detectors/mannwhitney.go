package detectors

import (
	"fmt"

	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// MannWhitney implements the one-sided (alternative "greater") Mann-Whitney
// U detector. Fails iff p_greater < alpha AND prob_t_gt_b >= effect floor.
// The effect-size floor prevents flagging highly significant but tiny
// stochastic differences. The check intentionally omits any
// "median_delta > 0" clause so tail-only regressions (a shift localized in
// the upper tail) are still caught.
//
// Grounded structurally on welch_ttest.go's Analyze method (compute a
// statistic and its p-value, then classify), generalized from a two-group
// t-test over a single combined series to a genuine two-sample rank test.
func MannWhitney(baseline, target domaingate.Sample, cfg domaingate.Config) (domaingate.DetectorOutcome, map[string]any, error) {
	u, pGreater, probTGtB, err := primitives.RankSumU(baseline, target)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}

	failed := pGreater < cfg.Alpha && probTGtB >= cfg.EffectFloorProb
	outcome := domaingate.Pass(domaingate.DetectorMannWhitney, probTGtB)
	if failed {
		outcome = domaingate.Fail(domaingate.DetectorMannWhitney,
			fmt.Sprintf("mann-whitney p=%.5f < alpha=%.3f with P(T>B)=%.3f >= floor=%.3f",
				pGreater, cfg.Alpha, probTGtB, cfg.EffectFloorProb), probTGtB)
	}

	details := map[string]any{
		"mann_whitney_u":          u,
		"mann_whitney_p":          pGreater,
		"prob_target_gt_baseline": probTGtB,
	}
	return outcome, details, nil
}
