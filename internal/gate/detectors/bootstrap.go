package detectors

import (
	"math/rand"

	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// Bootstrap always computes the bootstrap confidence interval of the
// median difference on admitted samples (spec §4.5 step 5). In PR mode the
// result is diagnostic only; in release mode the reducer uses it
// dispositively via Equivalence.
//
// Grounded on internal/referee/shredder.go's resampling-loop structure
// (draw resamples, record a statistic, compare to a bound), adapted from
// an unseeded permutation shuffle into a caller-seeded bootstrap with
// replacement so the result is bitwise reproducible for a fixed seed
// (spec invariant I5).
func Bootstrap(baseline, target domaingate.Sample, cfg domaingate.Config, rng *rand.Rand) (domaingate.DetectorOutcome, map[string]any, error) {
	// Confidence follows the 1-alpha reading (95% at the default alpha=0.05),
	// matching the worked release-mode scenario's literal "95% CI" rather
	// than the 1-2*alpha TOST convention, so the interval still tracks a
	// configured alpha instead of a second hardcoded constant.
	significance := cfg.Alpha
	lo, hi, point, err := primitives.BootstrapMedianDiff(baseline, target, cfg.BootstrapB, significance, rng)
	if err != nil {
		return domaingate.DetectorOutcome{}, nil, err
	}

	outcome := domaingate.Pass(domaingate.DetectorBootstrapCI, point)
	details := map[string]any{
		"bootstrap_ci_low_ms":  lo,
		"bootstrap_ci_high_ms": hi,
		"bootstrap_point_ms":   point,
	}
	return outcome, details, nil
}

// Equivalence implements the release-mode two-one-sided-tests (TOST) check:
// PASS-equivalent iff [lo, hi] is strictly inside (-margin, +margin).
func Equivalence(lo, hi, margin float64) bool {
	return lo > -margin && hi < margin
}
