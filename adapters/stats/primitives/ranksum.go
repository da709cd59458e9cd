package primitives

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"gatekeeper/domain/gate"
	"gatekeeper/internal/errors"
)

// rankedObservation pairs a value with which group ("b" or "t") it came from,
// for combined ranking.
type rankedObservation struct {
	value float64
	group byte // 'b' or 't'
	rank  float64
}

const exactEnumerationMaxN = 20

// RankSumU computes the Mann-Whitney U statistic for the target group via
// combined ranking with mid-rank tie correction. Returns U for the target
// group, the one-sided p-value for the alternative "target stochastically
// greater than baseline", and the effect-size estimate
// P(T>B) = U_t / (|b|*|t|) (ties contribute 0.5 each).
//
// Uses the exact null distribution (via the standard Mann-Whitney counting
// recurrence) when max(|b|,|t|) <= 20 and no ties are present; otherwise
// falls back to the normal approximation with continuity correction and
// tie-adjusted variance.
func RankSumU(b, t gate.Sample) (uTarget, pGreater, probTGtB float64, err error) {
	if len(b) == 0 || len(t) == 0 {
		return 0, 0, 0, errors.InsufficientData("rank_sum_u: empty sample")
	}

	nb, nt := len(b), len(t)
	combined := make([]rankedObservation, 0, nb+nt)
	for _, v := range b {
		combined = append(combined, rankedObservation{value: v, group: 'b'})
	}
	for _, v := range t {
		combined = append(combined, rankedObservation{value: v, group: 't'})
	}
	sort.Slice(combined, func(i, j int) bool { return combined[i].value < combined[j].value })

	tieGroupSizes := make([]int, 0)
	hasTies := false
	i := 0
	for i < len(combined) {
		j := i
		for j < len(combined) && combined[j].value == combined[i].value {
			j++
		}
		midRank := float64(i+1+j) / 2.0
		for k := i; k < j; k++ {
			combined[k].rank = midRank
		}
		if j-i > 1 {
			tieGroupSizes = append(tieGroupSizes, j-i)
			hasTies = true
		}
		i = j
	}

	rankSumT := 0.0
	for _, o := range combined {
		if o.group == 't' {
			rankSumT += o.rank
		}
	}

	fnb, fnt := float64(nb), float64(nt)
	uTarget = rankSumT - fnt*(fnt+1)/2.0
	probTGtB = uTarget / (fnb * fnt)

	if !hasTies && nb <= exactEnumerationMaxN && nt <= exactEnumerationMaxN {
		pGreater = exactMannWhitneyPGreater(nt, nb, uTarget)
		return uTarget, pGreater, probTGtB, nil
	}

	n := fnb + fnt
	tieCorrection := 0.0
	for _, size := range tieGroupSizes {
		s := float64(size)
		tieCorrection += s*s*s - s
	}
	varU := fnb * fnt / 12.0 * ((n + 1) - tieCorrection/(n*(n-1)))
	if varU <= 0 {
		varU = fnb * fnt * (n + 1) / 12.0
	}

	meanU := fnb * fnt / 2.0
	z := (uTarget - meanU - 0.5) / math.Sqrt(varU) // continuity correction

	normal := distuv.Normal{Mu: 0, Sigma: 1}
	pGreater = 1 - normal.CDF(z)
	if pGreater < 0 {
		pGreater = 0
	}
	if pGreater > 1 {
		pGreater = 1
	}

	return uTarget, pGreater, probTGtB, nil
}

// exactMannWhitneyPGreater computes the one-sided exact p-value
// P(U >= observedU) under the null hypothesis, using the standard counting
// recurrence for the number of rank arrangements of n1 items among n1+n2
// that produce each possible U value:
//
//	f(n1, n2, u) = f(n1-1, n2, u-n2) + f(n1, n2-1, u)
//	f(0, n2, 0) = 1, f(n1, 0, 0) = 1, f(n1, n2, u) = 0 for u<0 or u>n1*n2
//
// n1/u1 are the group whose U statistic was observed (the target group).
func exactMannWhitneyPGreater(n1, n2 int, observedU float64) float64 {
	maxU := n1 * n2
	table := make([][][]float64, n1+1)
	for a := 0; a <= n1; a++ {
		table[a] = make([][]float64, n2+1)
		for c := 0; c <= n2; c++ {
			table[a][c] = make([]float64, maxU+1)
		}
	}
	table[0][0][0] = 1
	for a := 0; a <= n1; a++ {
		for c := 0; c <= n2; c++ {
			if a == 0 && c == 0 {
				continue
			}
			limit := a * c
			for u := 0; u <= limit; u++ {
				var total float64
				if a > 0 && u-c >= 0 {
					total += table[a-1][c][u-c]
				}
				if c > 0 {
					total += table[a][c-1][u]
				}
				table[a][c][u] = total
			}
		}
	}

	total := 0.0
	for u := 0; u <= maxU; u++ {
		total += table[n1][n2][u]
	}
	if total == 0 {
		return 1.0
	}

	uFloor := int(math.Round(observedU))
	if uFloor < 0 {
		uFloor = 0
	}
	if uFloor > maxU {
		uFloor = maxU
	}
	countAtLeast := 0.0
	for u := uFloor; u <= maxU; u++ {
		countAtLeast += table[n1][n2][u]
	}
	p := countAtLeast / total
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
