package gate

import (
	"math"
	"sort"

	domaingate "gatekeeper/domain/gate"
)

// TailK implements the adaptive tail-sample-count formula:
// k = clamp(ceil(n * TailMetricKPct), TailMetricKMin, TailMetricKMax).
func TailK(n int, cfg domaingate.Config) int {
	k := int(math.Ceil(float64(n) * cfg.TailMetricKPct))
	if k < cfg.TailMetricKMin {
		k = cfg.TailMetricKMin
	}
	if k > cfg.TailMetricKMax {
		k = cfg.TailMetricKMax
	}
	if k > n {
		k = n
	}
	return k
}

// TailStat implements C4: the arithmetic mean of the k largest values in
// the sample. Single high percentiles are unstable at small n; this
// adaptive trimmed mean gives bounded variance while still responding to
// worst-case degradation. Ties at the threshold rank are broken
// arbitrarily but deterministically (sort ascending, take the last k).
func TailStat(sample domaingate.Sample, cfg domaingate.Config) (float64, error) {
	if len(sample) == 0 {
		return 0, domaingate.ErrEmptySample
	}
	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	k := TailK(len(sorted), cfg)
	worst := sorted[len(sorted)-k:]

	sum := 0.0
	for _, v := range worst {
		sum += v
	}
	return sum / float64(k), nil
}
