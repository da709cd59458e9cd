// Package primitives implements the C1 statistics primitives: median,
// percentile, MAD, coefficient of variation, the Mann-Whitney rank-sum U
// statistic, and bootstrap resampling for the median difference.
//
// Grounded on internal/profiling/distribution.go's use of
// github.com/montanaflynn/stats for summary statistics and IQR outlier
// detection, generalized from a one-sample distribution-shape report into
// the specific primitives this pipeline needs.
package primitives

import (
	"math"
	"math/rand"
	"sort"

	mstats "github.com/montanaflynn/stats"

	"gatekeeper/domain/gate"
	"gatekeeper/internal/errors"
)

// Median returns the linear-interpolation median of x.
func Median(x gate.Sample) (float64, error) {
	if len(x) == 0 {
		return 0, errors.InsufficientData("median: empty sample")
	}
	v, err := mstats.Median(mstats.Float64Data(x))
	if err != nil {
		return 0, errors.Wrap(err, "median")
	}
	return v, nil
}

// Percentile returns the type-7-convention percentile of x at q in [0,1].
func Percentile(x gate.Sample, q float64) (float64, error) {
	if len(x) == 0 {
		return 0, errors.InsufficientData("percentile: empty sample")
	}
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	return percentileOfSorted(sorted, q), nil
}

// MAD returns the median absolute deviation from the sample median. Not
// used anywhere on the gated samples themselves (the core only ranks them,
// per spec §9); exposed for diagnostics and tests.
func MAD(x gate.Sample) (float64, error) {
	med, err := Median(x)
	if err != nil {
		return 0, err
	}
	devs := make([]float64, len(x))
	for i, v := range x {
		devs[i] = math.Abs(v - med)
	}
	return Median(devs)
}

// CV returns the sample (n-1) coefficient of variation of x, expressed as a
// percent. Returns a CodeInternalError error when the mean is zero
// (UNDEFINED_CV).
func CV(x gate.Sample) (float64, error) {
	if len(x) == 0 {
		return 0, errors.InsufficientData("cv: empty sample")
	}
	mean, err := mstats.Mean(mstats.Float64Data(x))
	if err != nil {
		return 0, errors.Wrap(err, "cv mean")
	}
	if mean == 0 {
		return 0, errors.New(errors.CodeInternalError, "cv: undefined, mean is zero")
	}
	if len(x) < 2 {
		return 0, nil
	}
	sd, err := mstats.StandardDeviationSample(mstats.Float64Data(x))
	if err != nil {
		return 0, errors.Wrap(err, "cv stddev")
	}
	return (sd / math.Abs(mean)) * 100.0, nil
}

// IQROutliers returns the count of points in x outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR], and the Q1/Q3 values used.
func IQROutliers(x gate.Sample) (count int, q1, q3 float64, err error) {
	q1, err = Percentile(x, 0.25)
	if err != nil {
		return 0, 0, 0, err
	}
	q3, err = Percentile(x, 0.75)
	if err != nil {
		return 0, 0, 0, err
	}
	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	for _, v := range x {
		if v < lower || v > upper {
			count++
		}
	}
	return count, q1, q3, nil
}

// BootstrapSample draws len(x) values from x with replacement using rng.
func BootstrapSample(x gate.Sample, rng *rand.Rand) gate.Sample {
	out := make(gate.Sample, len(x))
	for i := range out {
		out[i] = x[rng.Intn(len(x))]
	}
	return out
}

// BootstrapMedianDiff draws B independent resampled pairs of (b, t), each of
// size len(b) and len(t) respectively with replacement, records
// median(t*) - median(b*), and returns the alpha/2 and 1-alpha/2
// percentiles of that empirical distribution plus the point estimate from
// the original samples. rng is an explicit, caller-seeded collaborator so
// the result is bitwise reproducible for a fixed seed (spec invariant I5).
func BootstrapMedianDiff(b, t gate.Sample, bIterations int, alpha float64, rng *rand.Rand) (lo, hi, point float64, err error) {
	baseMedB, err := Median(b)
	if err != nil {
		return 0, 0, 0, err
	}
	baseMedT, err := Median(t)
	if err != nil {
		return 0, 0, 0, err
	}
	point = baseMedT - baseMedB

	diffs := make([]float64, bIterations)
	for i := 0; i < bIterations; i++ {
		bs := BootstrapSample(b, rng)
		ts := BootstrapSample(t, rng)
		medB, err := Median(bs)
		if err != nil {
			return 0, 0, 0, err
		}
		medT, err := Median(ts)
		if err != nil {
			return 0, 0, 0, err
		}
		diffs[i] = medT - medB
	}
	sort.Float64s(diffs)

	lo = percentileOfSorted(diffs, alpha/2)
	hi = percentileOfSorted(diffs, 1-alpha/2)
	return lo, hi, point, nil
}

// percentileOfSorted applies the type-7 interpolation convention to an
// already-sorted slice.
func percentileOfSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := q * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= n {
		hi = n - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
